package repository

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"promptvault-backend/internal/models"
)

// CreateUserParams is the input shape for creating a user.
type CreateUserParams struct {
	Username string
	Email    string
	Password string
	IsActive *bool
}

// UpdateUserParams carries a sparse update: nil fields are left untouched.
type UpdateUserParams struct {
	Username *string
	Email    *string
	Password *string
	IsActive *bool
}

type UserRepository struct {
	CRUD[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{CRUD: NewCRUD[models.User](db), db: db}
}

func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create hashes the plaintext password and persists the user.
func (r *UserRepository) Create(params CreateUserParams) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       params.Username,
		Email:          params.Email,
		HashedPassword: string(hashed),
		IsActive:       true,
	}
	if params.IsActive != nil {
		user.IsActive = *params.IsActive
	}

	if err := r.Insert(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update overwrites only the fields present in params. A new password is
// re-hashed before it is stored; the plaintext never touches the row.
func (r *UserRepository) Update(user *models.User, params UpdateUserParams) (*models.User, error) {
	if params.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = string(hashed)
	}
	if params.Username != nil {
		user.Username = *params.Username
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.IsActive != nil {
		user.IsActive = *params.IsActive
	}

	if err := r.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}
