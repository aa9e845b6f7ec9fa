package services

import (
	"context"

	"gradebook/internal/domain/models"
)

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// LoginRequest represents a credential check request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserService defines business logic operations for users
type UserService interface {
	// CreateUser creates a new user. Anyone may create a student;
	// creating an instructor or admin requires an admin actor.
	CreateUser(ctx context.Context, actor models.Actor, req *CreateUserRequest) (*models.User, error)

	// Login verifies credentials and returns a signed token
	Login(ctx context.Context, req *LoginRequest) (string, error)

	// GetUser retrieves a user by ID; allowed for the user themself or
	// an admin
	GetUser(ctx context.Context, actor models.Actor, id string) (*models.User, error)
}
