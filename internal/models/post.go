package models

import "time"

// DefaultPreviewLength is the fallback number of leading runes used for
// a post's textual representation.
const DefaultPreviewLength = 15

// Post is a single authored text entry, optionally grouped and
// optionally illustrated.
type Post struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Text    string    `gorm:"type:text;not null"`        // Post body, required non-empty.
	PubDate time.Time `gorm:"not null;index:,sort:desc"` // Publication time, set once at creation.

	AuthorID uint64 `gorm:"not null;index"`      // Authoring user ID, immutable after creation.
	Author   *User  `gorm:"foreignKey:AuthorID"` // Authoring user.

	GroupID *uint64 `gorm:"index"`                                           // Optional group ID.
	Group   *Group  `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"` // Optional group; cleared when the group is deleted.

	Image string `gorm:"type:text"` // Stored file name of an optional uploaded image.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// Preview returns up to n leading runes of the post text.
func (p Post) Preview(n int) string {
	if n <= 0 {
		n = DefaultPreviewLength
	}
	runes := []rune(p.Text)
	if len(runes) <= n {
		return p.Text
	}
	return string(runes[:n])
}

// String returns the post's textual representation, a fixed-length
// prefix of its text.
func (p Post) String() string {
	return p.Preview(DefaultPreviewLength)
}
