package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"gradebook/internal/auth"
	"gradebook/internal/config"
	"gradebook/internal/handler"
	"gradebook/internal/middleware"
	"gradebook/internal/repository/postgres"
	"gradebook/internal/service"
	"gradebook/internal/service/authz"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create token service
	tokens, err := auth.NewTokenService(cfg.JWTSecret, logger)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	courseRepo := postgres.NewCourseRepository(repoConfig)
	assignmentRepo := postgres.NewAssignmentRepository(repoConfig)
	submissionRepo := postgres.NewSubmissionRepository(repoConfig)
	enrollmentRepo := postgres.NewEnrollmentRepository(repoConfig)

	// Authorization gate and the chain resolver behind it
	resolver := authz.NewInstructorResolver(submissionRepo, assignmentRepo, courseRepo)
	gate := authz.NewGate(resolver, enrollmentRepo)

	// Create services
	userService := service.NewUserService(userRepo, tokens, logger)
	courseService := service.NewCourseService(courseRepo, userRepo, enrollmentRepo, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, courseRepo, logger)
	submissionService := service.NewSubmissionService(submissionRepo, gate, logger)

	// Create handlers
	userHandler := handler.NewUserHandler(userService, logger)
	courseHandler := handler.NewCourseHandler(courseService, logger)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, logger)
	submissionHandler := handler.NewSubmissionHandler(submissionService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// User routes
	mux.HandleFunc("POST /users", userHandler.CreateUser)
	mux.HandleFunc("POST /users/login", userHandler.Login)
	mux.HandleFunc("GET /users/{id}", userHandler.GetUser)

	// Course routes
	mux.HandleFunc("GET /courses", courseHandler.ListCourses)
	mux.HandleFunc("POST /courses", courseHandler.CreateCourse)
	mux.HandleFunc("GET /courses/{id}", courseHandler.GetCourse)
	mux.HandleFunc("PATCH /courses/{id}", courseHandler.UpdateCourse)
	mux.HandleFunc("DELETE /courses/{id}", courseHandler.DeleteCourse)

	// Enrollment routes
	mux.HandleFunc("GET /courses/{id}/students", courseHandler.ListStudents)
	mux.HandleFunc("POST /courses/{id}/students", courseHandler.EnrollStudent)
	mux.HandleFunc("DELETE /courses/{id}/students/{studentId}", courseHandler.UnenrollStudent)

	// Assignment routes
	mux.HandleFunc("GET /courses/{id}/assignments", assignmentHandler.ListByCourse)
	mux.HandleFunc("POST /assignments", assignmentHandler.CreateAssignment)
	mux.HandleFunc("GET /assignments/{id}", assignmentHandler.GetAssignment)
	mux.HandleFunc("PATCH /assignments/{id}", assignmentHandler.UpdateAssignment)
	mux.HandleFunc("DELETE /assignments/{id}", assignmentHandler.DeleteAssignment)

	// Submission routes
	mux.HandleFunc("POST /assignments/{assignmentId}/submissions", submissionHandler.CreateSubmission)
	mux.HandleFunc("GET /assignments/{assignmentId}/submissions", submissionHandler.ListByAssignment)
	mux.HandleFunc("GET /submissions/{id}", submissionHandler.GetSubmission)
	mux.HandleFunc("PATCH /submissions/{id}", submissionHandler.EditContent)
	mux.HandleFunc("PUT /submissions/{id}", submissionHandler.EditContent)
	mux.HandleFunc("PATCH /submissions/{id}/grade", submissionHandler.AssignGrade)
	mux.HandleFunc("DELETE /submissions/{id}", submissionHandler.DeleteSubmission)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.AuthMiddleware(tokens)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
