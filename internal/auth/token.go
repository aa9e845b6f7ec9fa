package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gradebook/internal/domain"
	"gradebook/internal/domain/models"
)

// TokenLifetime is how long an issued token stays valid.
const TokenLifetime = 24 * time.Hour

// TokenService issues and verifies the HS256 tokens used by the API.
// The role claim embedded at issue time is what the authorization gate
// later trusts verbatim; it is never re-checked against the user row.
type TokenService struct {
	secret []byte
	logger *slog.Logger
}

// NewTokenService creates a token service. The secret must be
// non-empty; there is no unsigned fallback.
func NewTokenService(secret string, logger *slog.Logger) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	return &TokenService{
		secret: []byte(secret),
		logger: logger,
	}, nil
}

// Issue creates a signed token for the user with the role claim baked
// in.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
		Role: user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify validates a token string and extracts its claims. Any parse
// or validation failure maps to ErrUnauthorized; callers get no detail
// about what exactly was wrong with the token.
func (s *TokenService) Verify(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Prevent algorithm confusion attacks - allow only HS256
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", token.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		s.logger.Debug("token parse failed", "error", err)
		return nil, domain.ErrUnauthorized
	}

	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if claims.Subject == "" {
		s.logger.Debug("token missing subject claim")
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}
