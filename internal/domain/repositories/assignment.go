package repositories

import (
	"context"
	"time"

	"gradebook/internal/domain/models"
)

// AssignmentUpdate carries the allow-listed mutable assignment fields.
// Nil means "leave unchanged". CourseID is deliberately absent: an
// assignment cannot be moved between courses.
type AssignmentUpdate struct {
	Title  *string
	Points *int
	Due    *time.Time
}

// AssignmentRepository defines persistence operations for assignments
type AssignmentRepository interface {
	// Create inserts a new assignment
	Create(ctx context.Context, assignment *models.Assignment) error

	// GetByID retrieves an assignment by ID
	GetByID(ctx context.Context, id string) (*models.Assignment, error)

	// ListByCourse returns all assignments for a course
	ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error)

	// Update applies the non-nil fields of upd. Returns the number of
	// rows affected.
	Update(ctx context.Context, id string, upd *AssignmentUpdate) (int64, error)

	// Delete removes an assignment. Returns the number of rows affected.
	Delete(ctx context.Context, id string) (int64, error)
}
