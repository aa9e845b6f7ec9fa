package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"gradebook/internal/domain"
	"gradebook/internal/domain/models"
	"gradebook/internal/domain/repositories"
)

// PostgresAssignmentRepository implements the AssignmentRepository interface
type PostgresAssignmentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(config *RepositoryConfig) repositories.AssignmentRepository {
	return &PostgresAssignmentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new assignment
func (r *PostgresAssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, course_id, title, points, due, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Assignments)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		assignment.ID,
		assignment.CourseID,
		assignment.Title,
		assignment.Points,
		assignment.Due,
		assignment.CreatedAt,
		assignment.UpdatedAt,
	)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("%w: course %s does not exist", domain.ErrValidation, assignment.CourseID)
		}
		return fmt.Errorf("create assignment: %w", err)
	}

	return nil
}

// GetByID retrieves an assignment by ID
func (r *PostgresAssignmentRepository) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	query := fmt.Sprintf(`
		SELECT id, course_id, title, points, due, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Assignments)

	var assignment models.Assignment
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&assignment.ID,
		&assignment.CourseID,
		&assignment.Title,
		&assignment.Points,
		&assignment.Due,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("assignment %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}

	return &assignment, nil
}

// ListByCourse returns all assignments for a course
func (r *PostgresAssignmentRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error) {
	query := fmt.Sprintf(`
		SELECT id, course_id, title, points, due, created_at, updated_at
		FROM %s
		WHERE course_id = $1
		ORDER BY due
	`, r.tables.Assignments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var assignment models.Assignment
		err := rows.Scan(
			&assignment.ID,
			&assignment.CourseID,
			&assignment.Title,
			&assignment.Points,
			&assignment.Due,
			&assignment.CreatedAt,
			&assignment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}

	return assignments, nil
}

// Update applies the non-nil fields of upd
func (r *PostgresAssignmentRepository) Update(ctx context.Context, id string, upd *repositories.AssignmentUpdate) (int64, error) {
	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now()}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Title != nil {
		appendSet("title", *upd.Title)
	}
	if upd.Points != nil {
		appendSet("points", *upd.Points)
	}
	if upd.Due != nil {
		appendSet("due", *upd.Due)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d`,
		r.tables.Assignments, strings.Join(sets, ", "), len(args))

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update assignment: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete removes an assignment
func (r *PostgresAssignmentRepository) Delete(ctx context.Context, id string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Assignments)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete assignment: %w", err)
	}

	return tag.RowsAffected(), nil
}
