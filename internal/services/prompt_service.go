package services

import (
	"errors"

	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"
	"promptvault-backend/internal/repository"
)

var ErrPromptNotFound = errors.New("prompt not found")

// CreatePrompt stores a new prompt for the given owner. The owner must
// exist; a dangling user id is rejected instead of silently persisted.
func CreatePrompt(promptText string, userID uint) (*models.Prompt, error) {
	userRepo := repository.NewUserRepository(database.DB)
	owner, err := userRepo.Get(userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	repo := repository.NewPromptRepository(database.DB)
	return repo.CreateWithOwner(promptText, userID)
}

func FindPromptByID(promptID uint) (*models.Prompt, error) {
	repo := repository.NewPromptRepository(database.DB)
	return repo.Get(promptID)
}

// FindPrompts retrieves a page of prompts across all owners.
func FindPrompts(skip, limit int) ([]models.Prompt, error) {
	repo := repository.NewPromptRepository(database.DB)
	return repo.List(skip, limit)
}

// FindPromptsByOwner retrieves a page of one user's prompts.
func FindPromptsByOwner(userID uint, skip, limit int) ([]models.Prompt, error) {
	repo := repository.NewPromptRepository(database.DB)
	return repo.ListByOwner(userID, skip, limit)
}

// UpdatePrompt applies a sparse update to an existing prompt.
func UpdatePrompt(promptID uint, params repository.UpdatePromptParams) (*models.Prompt, error) {
	repo := repository.NewPromptRepository(database.DB)

	prompt, err := repo.Get(promptID)
	if err != nil {
		return nil, err
	}
	if prompt == nil {
		return nil, ErrPromptNotFound
	}

	return repo.Update(prompt, params)
}

func DeletePrompt(promptID uint) error {
	repo := repository.NewPromptRepository(database.DB)

	removed, err := repo.Remove(promptID)
	if err != nil {
		return err
	}
	if removed == nil {
		return ErrPromptNotFound
	}
	return nil
}
