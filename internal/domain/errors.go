package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that carry their own HTTP status code. The
// handler layer matches the sentinels first to enforce the uniform
// payloads, then falls back to this interface for typed errors.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ConflictError represents a uniqueness conflict with details about the
// existing resource (e.g. a user email that is already registered).
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (user, course, enrollment)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
