package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"
	"promptvault-backend/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

const sessionDenylistPrefix = "session:denylist:"

// AuthenticateUser checks a username/password pair at login time. After
// login the signed session cookie is trusted without re-checking here.
func AuthenticateUser(username, password string) (*models.User, error) {
	repo := repository.NewUserRepository(database.DB)

	user, err := repo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// RevokeSession denylists a session token until it would have expired
// on its own.
func RevokeSession(token string, expiration time.Duration) error {
	key := sessionDenylistPrefix + token
	return database.RedisClient.Set(database.Ctx, key, 1, expiration).Err()
}

func IsSessionRevoked(token string) (bool, error) {
	key := sessionDenylistPrefix + token
	val, err := database.RedisClient.Get(database.Ctx, key).Result()
	if err != nil {
		if err.Error() == "redis: nil" { // key does not exist
			return false, nil
		}
		return false, err
	}
	return val != "", nil
}
