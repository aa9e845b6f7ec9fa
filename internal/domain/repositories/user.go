package repositories

import (
	"context"

	"gradebook/internal/domain/models"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	// Create inserts a new user. Returns a ConflictError when the
	// email is already registered.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail retrieves a user by email, used for login
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
