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

// PostgresCourseRepository implements the CourseRepository interface
type PostgresCourseRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(config *RepositoryConfig) repositories.CourseRepository {
	return &PostgresCourseRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new course
func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, subject, number, title, term, instructor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Courses)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		course.ID,
		course.Subject,
		course.Number,
		course.Title,
		course.Term,
		course.InstructorID,
		course.CreatedAt,
		course.UpdatedAt,
	)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("%w: instructor %s does not exist", domain.ErrValidation, course.InstructorID)
		}
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *PostgresCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := fmt.Sprintf(`
		SELECT id, subject, number, title, term, instructor_id, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Courses)

	var course models.Course
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Subject,
		&course.Number,
		&course.Title,
		&course.Term,
		&course.InstructorID,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	return &course, nil
}

// Count returns the total number of courses
func (r *PostgresCourseRepository) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Courses)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}

	return count, nil
}

// List returns one page window of courses
func (r *PostgresCourseRepository) List(ctx context.Context, limit, offset int) ([]models.Course, error) {
	query := fmt.Sprintf(`
		SELECT id, subject, number, title, term, instructor_id, created_at, updated_at
		FROM %s
		ORDER BY subject, number, term
		LIMIT $1 OFFSET $2
	`, r.tables.Courses)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		err := rows.Scan(
			&course.ID,
			&course.Subject,
			&course.Number,
			&course.Title,
			&course.Term,
			&course.InstructorID,
			&course.CreatedAt,
			&course.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}

	return courses, nil
}

// Update applies the non-nil fields of upd
func (r *PostgresCourseRepository) Update(ctx context.Context, id string, upd *repositories.CourseUpdate) (int64, error) {
	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now()}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Subject != nil {
		appendSet("subject", *upd.Subject)
	}
	if upd.Number != nil {
		appendSet("number", *upd.Number)
	}
	if upd.Title != nil {
		appendSet("title", *upd.Title)
	}
	if upd.Term != nil {
		appendSet("term", *upd.Term)
	}
	if upd.InstructorID != nil {
		appendSet("instructor_id", *upd.InstructorID)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d`,
		r.tables.Courses, strings.Join(sets, ", "), len(args))

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, args...)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return 0, fmt.Errorf("%w: instructor does not exist", domain.ErrValidation)
		}
		return 0, fmt.Errorf("update course: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete removes a course
func (r *PostgresCourseRepository) Delete(ctx context.Context, id string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Courses)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete course: %w", err)
	}

	return tag.RowsAffected(), nil
}
