package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gradebook/internal/auth"
	"gradebook/internal/domain"
	"gradebook/internal/domain/models"
	"gradebook/internal/domain/repositories"
	"gradebook/internal/domain/services"
)

// userService implements the UserService interface
type userService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenService
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenService,
	logger *slog.Logger,
) services.UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// CreateUser creates a new user. Requests for an instructor or admin
// account require an admin actor; student self-registration is open.
func (s *userService) CreateUser(ctx context.Context, actor models.Actor, req *services.CreateUserRequest) (*models.User, error) {
	// Role check before validation: privileged account requests from
	// non-admins are forbidden even when the body is also invalid.
	if req.Role != models.RoleStudent && actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("only admins may create %s accounts: %w", req.Role, domain.ErrForbidden)
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		"id", user.ID,
		"role", user.Role,
	)

	return user, nil
}

// Login verifies credentials and returns a signed token. A wrong email
// and a wrong password produce the same answer.
func (s *userService) Login(ctx context.Context, req *services.LoginRequest) (string, error) {
	if err := s.validateLoginRequest(req); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}

	s.logger.Info("user logged in", "id", user.ID, "role", user.Role)

	return token, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, actor models.Actor, id string) (*models.User, error) {
	if actor.Role != models.RoleAdmin && actor.ID != id {
		return nil, fmt.Errorf("may not read another user: %w", domain.ErrForbidden)
	}

	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) validateCreateRequest(req *services.CreateUserRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&req.Role, validation.Required, validation.In(
			models.RoleStudent, models.RoleInstructor, models.RoleAdmin,
		)),
	)
}

func (s *userService) validateLoginRequest(req *services.LoginRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
