package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"gradebook/internal/config"
	"gradebook/internal/domain/models"
	"gradebook/internal/domain/repositories"
	"gradebook/internal/repository/postgres"
)

// seedFixture is the YAML layout consumed by --fixture. Students and
// instructors are referenced by email within the file.
type seedFixture struct {
	Users   []seedUser   `yaml:"users"`
	Courses []seedCourse `yaml:"courses"`
}

type seedUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type seedCourse struct {
	Subject     string           `yaml:"subject"`
	Number      string           `yaml:"number"`
	Title       string           `yaml:"title"`
	Term        string           `yaml:"term"`
	Instructor  string           `yaml:"instructor"` // email
	Students    []string         `yaml:"students"`   // emails
	Assignments []seedAssignment `yaml:"assignments"`
}

type seedAssignment struct {
	Title  string    `yaml:"title"`
	Points int       `yaml:"points"`
	Due    time.Time `yaml:"due"`
}

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	fixturePath := flag.String("fixture", "seed.yaml", "Path to the YAML seed fixture")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		return
	}

	fixture, err := loadFixture(*fixturePath)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	courseRepo := postgres.NewCourseRepository(repoConfig)
	assignmentRepo := postgres.NewAssignmentRepository(repoConfig)
	enrollmentRepo := postgres.NewEnrollmentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// All-or-nothing: a half-seeded fixture is worse than none
	err = txManager.ExecTx(ctx, func(ctx context.Context) error {
		return applyFixture(ctx, fixture, userRepo, courseRepo, assignmentRepo, enrollmentRepo)
	})
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Println("Seeding complete")
}

func loadFixture(path string) (*seedFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var fixture seedFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	return &fixture, nil
}

func applyFixture(
	ctx context.Context,
	fixture *seedFixture,
	userRepo repositories.UserRepository,
	courseRepo repositories.CourseRepository,
	assignmentRepo repositories.AssignmentRepository,
	enrollmentRepo repositories.EnrollmentRepository,
) error {
	now := time.Now()
	usersByEmail := make(map[string]*models.User)

	for _, u := range fixture.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Email, err)
		}

		user := &models.User{
			ID:           uuid.New().String(),
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: string(hash),
			Role:         models.Role(u.Role),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if !user.Role.Valid() {
			return fmt.Errorf("user %s has unknown role %q", u.Email, u.Role)
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", u.Email, err)
		}
		usersByEmail[u.Email] = user
		log.Printf("Created user %s (%s)", u.Email, u.Role)
	}

	for _, c := range fixture.Courses {
		instructor, ok := usersByEmail[c.Instructor]
		if !ok {
			return fmt.Errorf("course %s %s references unknown instructor %s", c.Subject, c.Number, c.Instructor)
		}

		course := &models.Course{
			ID:           uuid.New().String(),
			Subject:      c.Subject,
			Number:       c.Number,
			Title:        c.Title,
			Term:         c.Term,
			InstructorID: instructor.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := courseRepo.Create(ctx, course); err != nil {
			return fmt.Errorf("create course %s %s: %w", c.Subject, c.Number, err)
		}
		log.Printf("Created course %s %s (%s)", c.Subject, c.Number, c.Term)

		for _, a := range c.Assignments {
			assignment := &models.Assignment{
				ID:        uuid.New().String(),
				CourseID:  course.ID,
				Title:     a.Title,
				Points:    a.Points,
				Due:       a.Due,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := assignmentRepo.Create(ctx, assignment); err != nil {
				return fmt.Errorf("create assignment %s: %w", a.Title, err)
			}
		}

		for _, email := range c.Students {
			student, ok := usersByEmail[email]
			if !ok {
				return fmt.Errorf("course %s %s references unknown student %s", c.Subject, c.Number, email)
			}
			err := enrollmentRepo.Add(ctx, &models.Enrollment{
				CourseID:  course.ID,
				StudentID: student.ID,
				CreatedAt: now,
			})
			if err != nil {
				return fmt.Errorf("enroll %s: %w", email, err)
			}
		}
	}

	return nil
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('student', 'instructor', 'admin')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Courses + ` (
			id UUID PRIMARY KEY,
			subject TEXT NOT NULL,
			number TEXT NOT NULL,
			title TEXT NOT NULL,
			term TEXT NOT NULL,
			instructor_id UUID NOT NULL REFERENCES ` + tables.Users + `(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Assignments + ` (
			id UUID PRIMARY KEY,
			course_id UUID NOT NULL REFERENCES ` + tables.Courses + `(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			points INTEGER NOT NULL DEFAULT 0 CHECK (points >= 0),
			due TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Submissions + ` (
			id UUID PRIMARY KEY,
			assignment_id UUID NOT NULL REFERENCES ` + tables.Assignments + `(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			grade DOUBLE PRECISION CHECK (grade >= 0),
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Enrollments + ` (
			course_id UUID NOT NULL REFERENCES ` + tables.Courses + `(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (course_id, student_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Submissions + `_assignment
			ON ` + tables.Submissions + ` (assignment_id, submitted_at)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables removes everything, children first
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{
		tables.Enrollments,
		tables.Submissions,
		tables.Assignments,
		tables.Courses,
		tables.Users,
	} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
	}
	return nil
}
