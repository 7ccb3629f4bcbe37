package models

import "time"

// User represents an authoring account stored in the database.
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Username string `gorm:"type:text;not null;uniqueIndex"` // Unique login name.
	Name     string `gorm:"type:text"`                      // Display name.
	Email    string `gorm:"type:text;uniqueIndex"`          // Email address.
	Password string `gorm:"type:text;not null"`             // Hashed password.

	IsAdmin bool `gorm:"not null;default:false"` // Grants access to the admin surface.

	Posts []Post `gorm:"foreignKey:AuthorID"` // Authored posts.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
