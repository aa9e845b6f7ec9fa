package repositories

import (
	"context"

	"gradebook/internal/domain/models"
)

// SubmissionRepository defines persistence operations for submissions.
// Mutations are field-restricted at this boundary: UpdateContent and
// UpdateGrade each write exactly one allow-listed column, so a request
// body can never smuggle extra fields into the row.
type SubmissionRepository interface {
	// Create inserts a new submission
	Create(ctx context.Context, submission *models.Submission) error

	// GetByID retrieves a submission by ID
	GetByID(ctx context.Context, id string) (*models.Submission, error)

	// CountByAssignment returns the total number of submissions for an
	// assignment
	CountByAssignment(ctx context.Context, assignmentID string) (int, error)

	// ListByAssignment returns one page window of submissions for an
	// assignment ordered by submission time
	ListByAssignment(ctx context.Context, assignmentID string, limit, offset int) ([]models.Submission, error)

	// UpdateContent overwrites the content field only. Returns the
	// number of rows affected; zero means the submission is gone.
	UpdateContent(ctx context.Context, id, content string) (int64, error)

	// UpdateGrade overwrites the grade field only. Returns the number
	// of rows affected.
	UpdateGrade(ctx context.Context, id string, grade float64) (int64, error)

	// Delete removes a submission. Returns the number of rows affected.
	Delete(ctx context.Context, id string) (int64, error)
}
