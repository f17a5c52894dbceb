package models

import "time"

// User represents a registered account. Email is optional; when present it
// must be unique — sqlite unique indexes ignore NULLs, so absent emails
// never collide.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	Email        *string   `gorm:"size:128;uniqueIndex" json:"email"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}
