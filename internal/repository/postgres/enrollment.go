package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"gradebook/internal/domain"
	"gradebook/internal/domain/models"
	"gradebook/internal/domain/repositories"
)

// PostgresEnrollmentRepository implements the EnrollmentRepository interface
type PostgresEnrollmentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(config *RepositoryConfig) repositories.EnrollmentRepository {
	return &PostgresEnrollmentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Add enrolls a student in a course
func (r *PostgresEnrollmentRepository) Add(ctx context.Context, enrollment *models.Enrollment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (course_id, student_id, created_at)
		VALUES ($1, $2, $3)
	`, r.tables.Enrollments)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		enrollment.CourseID,
		enrollment.StudentID,
		enrollment.CreatedAt,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "student already enrolled in course",
				ResourceType: "enrollment",
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("%w: course or student does not exist", domain.ErrValidation)
		}
		return fmt.Errorf("add enrollment: %w", err)
	}

	return nil
}

// Remove unenrolls a student
func (r *PostgresEnrollmentRepository) Remove(ctx context.Context, courseID, studentID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE course_id = $1 AND student_id = $2`, r.tables.Enrollments)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, courseID, studentID)
	if err != nil {
		return 0, fmt.Errorf("remove enrollment: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Exists reports whether the student is enrolled in the course
func (r *PostgresEnrollmentRepository) Exists(ctx context.Context, courseID, studentID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE course_id = $1 AND student_id = $2)
	`, r.tables.Enrollments)

	var exists bool
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, courseID, studentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}

	return exists, nil
}

// ListStudents returns the IDs of all students enrolled in a course
func (r *PostgresEnrollmentRepository) ListStudents(ctx context.Context, courseID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT student_id FROM %s WHERE course_id = $1 ORDER BY created_at
	`, r.tables.Enrollments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("list enrolled students: %w", err)
	}
	defer rows.Close()

	var studentIDs []string
	for rows.Next() {
		var studentID string
		if err := rows.Scan(&studentID); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		studentIDs = append(studentIDs, studentID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollments: %w", err)
	}

	return studentIDs, nil
}
