package models

import "time"

// Prompt is a user-submitted text plus its generated response.
// Response stays nil until one is attached.
type Prompt struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Prompt    string    `gorm:"type:text;not null" json:"prompt"`
	Response  *string   `gorm:"type:text" json:"response"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
