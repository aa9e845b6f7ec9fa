package repositories

import (
	"context"

	"gradebook/internal/domain/models"
)

// CourseUpdate carries the allow-listed mutable course fields. Nil
// means "leave unchanged"; the repository writes only non-nil fields.
type CourseUpdate struct {
	Subject      *string
	Number       *string
	Title        *string
	Term         *string
	InstructorID *string
}

// CourseRepository defines persistence operations for courses
type CourseRepository interface {
	// Create inserts a new course
	Create(ctx context.Context, course *models.Course) error

	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id string) (*models.Course, error)

	// Count returns the total number of courses
	Count(ctx context.Context) (int, error)

	// List returns one page window of courses ordered by subject,
	// number, term
	List(ctx context.Context, limit, offset int) ([]models.Course, error)

	// Update applies the non-nil fields of upd. Returns the number of
	// rows affected; zero means the course no longer exists.
	Update(ctx context.Context, id string, upd *CourseUpdate) (int64, error)

	// Delete removes a course. Returns the number of rows affected.
	Delete(ctx context.Context, id string) (int64, error)
}
