package prompts

import (
	"time"

	"promptvault-backend/internal/models"
)

type CreatePromptRequest struct {
	Prompt string `json:"prompt" binding:"required,min=5"`
	UserID uint   `json:"user_id" binding:"required"`
}

// UpdatePromptRequest only exposes the response: prompt text is treated
// as immutable once created.
type UpdatePromptRequest struct {
	Response *string `json:"response,omitempty"`
}

type PromptResponse struct {
	ID        uint      `json:"id"`
	Prompt    string    `json:"prompt"`
	Response  *string   `json:"response"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPromptResponse(p models.Prompt) PromptResponse {
	return PromptResponse{
		ID:        p.ID,
		Prompt:    p.Prompt,
		Response:  p.Response,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
