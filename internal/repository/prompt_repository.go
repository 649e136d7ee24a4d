package repository

import (
	"gorm.io/gorm"

	"promptvault-backend/internal/models"
)

// UpdatePromptParams carries a sparse update: nil fields are left untouched.
// The generic update path can rewrite the prompt text even though the API
// layer treats it as immutable after creation.
type UpdatePromptParams struct {
	Prompt   *string
	Response *string
}

type PromptRepository struct {
	CRUD[models.Prompt]
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{CRUD: NewCRUD[models.Prompt](db), db: db}
}

// CreateWithOwner persists a prompt for the given owner. The response
// starts out nil and is attached by a later update.
func (r *PromptRepository) CreateWithOwner(promptText string, userID uint) (*models.Prompt, error) {
	prompt := &models.Prompt{
		Prompt: promptText,
		UserID: userID,
	}
	if err := r.Insert(prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

// ListByOwner pages through one user's prompts.
func (r *PromptRepository) ListByOwner(userID uint, skip, limit int) ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := r.db.Where("user_id = ?", userID).Offset(skip).Limit(limit).Find(&prompts).Error
	return prompts, err
}

func (r *PromptRepository) Update(prompt *models.Prompt, params UpdatePromptParams) (*models.Prompt, error) {
	if params.Prompt != nil {
		prompt.Prompt = *params.Prompt
	}
	if params.Response != nil {
		prompt.Response = params.Response
	}

	if err := r.Save(prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}
