package models

import "time"

// Group is a named community posts may be assigned to.
type Group struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Title       string `gorm:"type:text;not null"`             // Display title.
	Slug        string `gorm:"type:text;not null;uniqueIndex"` // Unique URL lookup key.
	Description string `gorm:"type:text;not null"`             // Free-text description.

	Posts []Post `gorm:"foreignKey:GroupID"` // Posts assigned to the group.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// String returns the group's textual representation, its title.
func (g Group) String() string {
	return g.Title
}
