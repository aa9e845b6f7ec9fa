package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"gradebook/internal/domain"
	"gradebook/internal/domain/models"
	"gradebook/internal/domain/repositories"
)

// PostgresSubmissionRepository implements the SubmissionRepository interface
type PostgresSubmissionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(config *RepositoryConfig) repositories.SubmissionRepository {
	return &PostgresSubmissionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new submission
func (r *PostgresSubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, assignment_id, student_id, content, grade, submitted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Submissions)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		submission.ID,
		submission.AssignmentID,
		submission.StudentID,
		submission.Content,
		submission.Grade,
		submission.SubmittedAt,
		submission.UpdatedAt,
	)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("%w: assignment %s does not exist", domain.ErrValidation, submission.AssignmentID)
		}
		return fmt.Errorf("create submission: %w", err)
	}

	return nil
}

// GetByID retrieves a submission by ID
func (r *PostgresSubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	query := fmt.Sprintf(`
		SELECT id, assignment_id, student_id, content, grade, submitted_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Submissions)

	var submission models.Submission
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&submission.ID,
		&submission.AssignmentID,
		&submission.StudentID,
		&submission.Content,
		&submission.Grade,
		&submission.SubmittedAt,
		&submission.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("submission %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}

	return &submission, nil
}

// CountByAssignment returns the total number of submissions for an assignment
func (r *PostgresSubmissionRepository) CountByAssignment(ctx context.Context, assignmentID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE assignment_id = $1`, r.tables.Submissions)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, assignmentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}

	return count, nil
}

// ListByAssignment returns one page window of submissions for an
// assignment. No snapshot is shared with CountByAssignment; the two
// queries may observe different states under concurrent writes.
func (r *PostgresSubmissionRepository) ListByAssignment(ctx context.Context, assignmentID string, limit, offset int) ([]models.Submission, error) {
	query := fmt.Sprintf(`
		SELECT id, assignment_id, student_id, content, grade, submitted_at, updated_at
		FROM %s
		WHERE assignment_id = $1
		ORDER BY submitted_at, id
		LIMIT $2 OFFSET $3
	`, r.tables.Submissions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, assignmentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var submissions []models.Submission
	for rows.Next() {
		var submission models.Submission
		err := rows.Scan(
			&submission.ID,
			&submission.AssignmentID,
			&submission.StudentID,
			&submission.Content,
			&submission.Grade,
			&submission.SubmittedAt,
			&submission.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}

	return submissions, nil
}

// UpdateContent overwrites the content field only
func (r *PostgresSubmissionRepository) UpdateContent(ctx context.Context, id, content string) (int64, error) {
	query := fmt.Sprintf(`UPDATE %s SET content = $1, updated_at = $2 WHERE id = $3`, r.tables.Submissions)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, content, time.Now(), id)
	if err != nil {
		return 0, fmt.Errorf("update submission content: %w", err)
	}

	return tag.RowsAffected(), nil
}

// UpdateGrade overwrites the grade field only
func (r *PostgresSubmissionRepository) UpdateGrade(ctx context.Context, id string, grade float64) (int64, error) {
	query := fmt.Sprintf(`UPDATE %s SET grade = $1, updated_at = $2 WHERE id = $3`, r.tables.Submissions)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, grade, time.Now(), id)
	if err != nil {
		if IsPgCheckError(err) {
			return 0, fmt.Errorf("%w: grade out of range", domain.ErrValidation)
		}
		return 0, fmt.Errorf("update submission grade: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete removes a submission
func (r *PostgresSubmissionRepository) Delete(ctx context.Context, id string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Submissions)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete submission: %w", err)
	}

	return tag.RowsAffected(), nil
}
