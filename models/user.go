package models

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:150;uniqueIndex;not null"`
	Email     string `gorm:"size:254"`
	Password  string `gorm:"not null" json:"-"` // bcrypt hash, never plaintext
	CreatedAt time.Time
}
