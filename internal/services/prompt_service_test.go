package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"promptvault-backend/internal/database"
	"promptvault-backend/internal/repository"
)

func TestCreatePromptValidatesOwner(t *testing.T) {
	setupTestDB()
	database.RedisClient = nil

	_, err := CreatePrompt("why is the sky blue?", 42)
	assert.ErrorIs(t, err, ErrUserNotFound)

	alice, err := CreateUser(repository.CreateUserParams{
		Username: "alice", Email: "a@x.com", Password: "longpassword",
	})
	assert.NoError(t, err)

	prompt, err := CreatePrompt("why is the sky blue?", alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, alice.ID, prompt.UserID)
	assert.Nil(t, prompt.Response)
}

func TestUpdatePromptAttachesResponse(t *testing.T) {
	setupTestDB()
	database.RedisClient = nil

	alice, err := CreateUser(repository.CreateUserParams{
		Username: "alice", Email: "a@x.com", Password: "longpassword",
	})
	assert.NoError(t, err)

	prompt, err := CreatePrompt("why is the sky blue?", alice.ID)
	assert.NoError(t, err)

	response := "Rayleigh scattering"
	updated, err := UpdatePrompt(prompt.ID, repository.UpdatePromptParams{Response: &response})
	assert.NoError(t, err)
	assert.Equal(t, "why is the sky blue?", updated.Prompt)
	assert.Equal(t, "Rayleigh scattering", *updated.Response)

	// Replacing an existing response also works
	newResponse := "Scattering of sunlight"
	updated, err = UpdatePrompt(prompt.ID, repository.UpdatePromptParams{Response: &newResponse})
	assert.NoError(t, err)
	assert.Equal(t, "Scattering of sunlight", *updated.Response)

	_, err = UpdatePrompt(9999, repository.UpdatePromptParams{Response: &response})
	assert.ErrorIs(t, err, ErrPromptNotFound)
}

func TestFindPromptsByOwnerScoping(t *testing.T) {
	setupTestDB()
	database.RedisClient = nil

	alice, err := CreateUser(repository.CreateUserParams{
		Username: "alice", Email: "a@x.com", Password: "longpassword",
	})
	assert.NoError(t, err)
	bob, err := CreateUser(repository.CreateUserParams{
		Username: "bob", Email: "b@x.com", Password: "longpassword",
	})
	assert.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = CreatePrompt("alice asks something", alice.ID)
		assert.NoError(t, err)
	}
	_, err = CreatePrompt("bob asks something", bob.ID)
	assert.NoError(t, err)

	alicePrompts, err := FindPromptsByOwner(alice.ID, 0, 10)
	assert.NoError(t, err)
	assert.Len(t, alicePrompts, 2)
	for _, p := range alicePrompts {
		assert.Equal(t, alice.ID, p.UserID)
	}

	all, err := FindPrompts(0, 10)
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeletePrompt(t *testing.T) {
	setupTestDB()
	database.RedisClient = nil

	alice, err := CreateUser(repository.CreateUserParams{
		Username: "alice", Email: "a@x.com", Password: "longpassword",
	})
	assert.NoError(t, err)

	prompt, err := CreatePrompt("why is the sky blue?", alice.ID)
	assert.NoError(t, err)

	assert.NoError(t, DeletePrompt(prompt.ID))

	got, err := FindPromptByID(prompt.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, DeletePrompt(prompt.ID), ErrPromptNotFound)
}
