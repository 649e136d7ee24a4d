package services

import (
	"promptvault-backend/internal/database"
	"promptvault-backend/internal/repository"
)

// SeedAdmin creates the admin account on first run. A database that
// already has the admin user is left alone.
func SeedAdmin() error {
	repo := repository.NewUserRepository(database.DB)

	existing, err := repo.FindByUsername("admin")
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	_, err = repo.Create(repository.CreateUserParams{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "adminpassword",
	})
	return err
}
