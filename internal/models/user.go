package models

import "time"

type User struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Username       string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Prompts owned by this user. Deleting a user deletes them too.
	Prompts []Prompt `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
