package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"
	"promptvault-backend/internal/repository"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("the username is already taken")
	ErrEmailTaken    = errors.New("the email is already registered")
)

const userCacheDuration = time.Hour

func userCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// FindUserByID loads a user, going through the redis cache when available.
func FindUserByID(userID uint) (models.User, error) {
	// Try cache
	cacheKey := userCacheKey(userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	repo := repository.NewUserRepository(database.DB)
	user, err := repo.Get(userID)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, ErrUserNotFound
	}

	// Set cache
	if database.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, userCacheDuration)
		}
	}

	return *user, nil
}

func FindUserByUsername(username string) (models.User, error) {
	repo := repository.NewUserRepository(database.DB)
	user, err := repo.FindByUsername(username)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, ErrUserNotFound
	}
	return *user, nil
}

// FindUsers retrieves a page of users.
func FindUsers(skip, limit int) ([]models.User, error) {
	repo := repository.NewUserRepository(database.DB)
	return repo.List(skip, limit)
}

// CreateUser creates a user after checking username and email are free.
// The checks are a fast path; the unique indexes on the table are the
// final arbiter when two creates race.
func CreateUser(params repository.CreateUserParams) (*models.User, error) {
	repo := repository.NewUserRepository(database.DB)

	existing, err := repo.FindByUsername(params.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	existing, err = repo.FindByEmail(params.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user, err := repo.Create(params)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, classifyDuplicate(repo, params)
		}
		return nil, err
	}
	return user, nil
}

// classifyDuplicate reports which unique value an insert collided on,
// for a create that passed the pre-checks but was rejected by a unique
// index (a concurrent duplicate landed in between).
func classifyDuplicate(repo *repository.UserRepository, params repository.CreateUserParams) error {
	if existing, err := repo.FindByUsername(params.Username); err == nil && existing != nil {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

// UpdateUser applies a sparse update, re-running the uniqueness checks
// when username or email change.
func UpdateUser(userID uint, params repository.UpdateUserParams) (*models.User, error) {
	repo := repository.NewUserRepository(database.DB)

	user, err := repo.Get(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if params.Username != nil && *params.Username != user.Username {
		existing, err := repo.FindByUsername(*params.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrUsernameTaken
		}
	}

	if params.Email != nil && *params.Email != user.Email {
		existing, err := repo.FindByEmail(*params.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailTaken
		}
	}

	updated, err := repo.Update(user, params)
	if err != nil {
		return nil, err
	}

	invalidateUserCache(userID)
	return updated, nil
}

// DeleteUser removes a user and all prompts they own in one transaction,
// so no orphan prompt can survive.
func DeleteUser(userID uint) error {
	repo := repository.NewUserRepository(database.DB)

	user, err := repo.Get(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Prompt{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return err
	}

	invalidateUserCache(userID)
	return nil
}

func invalidateUserCache(userID uint) {
	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, userCacheKey(userID))
	}
}
