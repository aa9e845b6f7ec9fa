package repositories

import (
	"context"

	"gradebook/internal/domain/models"
)

// EnrollmentRepository defines persistence operations for the
// student-course enrollment relation
type EnrollmentRepository interface {
	// Add enrolls a student in a course. Returns a ConflictError when
	// the pair already exists.
	Add(ctx context.Context, enrollment *models.Enrollment) error

	// Remove unenrolls a student. Returns the number of rows affected.
	Remove(ctx context.Context, courseID, studentID string) (int64, error)

	// Exists reports whether the student is enrolled in the course
	Exists(ctx context.Context, courseID, studentID string) (bool, error)

	// ListStudents returns the IDs of all students enrolled in a course
	ListStudents(ctx context.Context, courseID string) ([]string, error)
}
