// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByEmail(email)
package users

import (
	"github.com/libreshelf/library/internal/database"
	"github.com/libreshelf/library/internal/entities"
	"gorm.io/gorm"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a new user. The unique index on email is the source of
// truth for duplicates: a concurrent insert of the same email surfaces as
// database.ErrConflict rather than a second row.
func (r *Repository) CreateUser(email, passwordHash string, role entities.UserRole) (*entities.User, error) {
	user := &entities.User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, database.TranslateError(err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by exact email match.
func (r *Repository) GetUserByEmail(email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

// SetUserRole updates the role of the user with the given email.
// Returns database.ErrNotFound if no such user exists.
func (r *Repository) SetUserRole(email string, role entities.UserRole) error {
	result := r.db.Model(&entities.User{}).Where("email = ?", email).Update("role", role)
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}
