package domain

import "time" // Timestamps

// User Model
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`               // UUID primary key
	Name      string    `gorm:"not null" json:"name"`                       // Display name
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"` // Unique, lower-cased email
	Password  string    `gorm:"not null" json:"-"`                          // Hashed password, never serialized
	CreatedAt time.Time `json:"createdAt"`                                  // Registration time
}
