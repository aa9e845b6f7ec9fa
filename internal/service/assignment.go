package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"gradebook/internal/domain"
	"gradebook/internal/domain/models"
	"gradebook/internal/domain/repositories"
	"gradebook/internal/domain/services"
)

// assignmentService implements the AssignmentService interface
type assignmentService struct {
	assignmentRepo repositories.AssignmentRepository
	courseRepo     repositories.CourseRepository
	logger         *slog.Logger
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	assignmentRepo repositories.AssignmentRepository,
	courseRepo repositories.CourseRepository,
	logger *slog.Logger,
) services.AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
		logger:         logger,
	}
}

// CreateAssignment creates an assignment under a course
func (s *assignmentService) CreateAssignment(ctx context.Context, actor models.Actor, req *services.CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.requireCourseOwnerOrAdmin(ctx, actor, req.CourseID); err != nil {
		return nil, err
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	assignment := &models.Assignment{
		ID:        uuid.New().String(),
		CourseID:  req.CourseID,
		Title:     req.Title,
		Points:    req.Points,
		Due:       req.Due,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	s.logger.Info("assignment created",
		"id", assignment.ID,
		"course_id", assignment.CourseID,
	)

	return assignment, nil
}

// GetAssignment retrieves an assignment by ID
func (s *assignmentService) GetAssignment(ctx context.Context, id string) (*models.Assignment, error) {
	return s.assignmentRepo.GetByID(ctx, id)
}

// ListByCourse returns all assignments for a course
func (s *assignmentService) ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error) {
	// Course existence gates the listing: a bad course ID is a 404,
	// not an empty list.
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}

	return assignments, nil
}

// UpdateAssignment mutates an assignment
func (s *assignmentService) UpdateAssignment(ctx context.Context, actor models.Actor, id string, req *services.UpdateAssignmentRequest) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requireCourseOwnerOrAdmin(ctx, actor, assignment.CourseID); err != nil {
		return err
	}

	if req.Points != nil && *req.Points < 0 {
		return fmt.Errorf("%w: points must not be negative", domain.ErrValidation)
	}

	rows, err := s.assignmentRepo.Update(ctx, id, &repositories.AssignmentUpdate{
		Title:  req.Title,
		Points: req.Points,
		Due:    req.Due,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("assignment %s: %w", id, domain.ErrNotFound)
	}

	s.logger.Info("assignment updated", "id", id)

	return nil
}

// DeleteAssignment removes an assignment
func (s *assignmentService) DeleteAssignment(ctx context.Context, actor models.Actor, id string) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requireCourseOwnerOrAdmin(ctx, actor, assignment.CourseID); err != nil {
		return err
	}

	rows, err := s.assignmentRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("assignment %s: %w", id, domain.ErrNotFound)
	}

	s.logger.Info("assignment deleted", "id", id, "course_id", assignment.CourseID)

	return nil
}

// requireCourseOwnerOrAdmin allows an admin, or the instructor owning
// the course
func (s *assignmentService) requireCourseOwnerOrAdmin(ctx context.Context, actor models.Actor, courseID string) error {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleInstructor {
		return fmt.Errorf("invalid role: %w", domain.ErrForbidden)
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}

	if actor.Role == models.RoleInstructor && course.InstructorID != actor.ID {
		return fmt.Errorf("instructor does not own course: %w", domain.ErrForbidden)
	}

	return nil
}

func (s *assignmentService) validateCreateRequest(req *services.CreateAssignmentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CourseID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Points, validation.Min(0)),
		validation.Field(&req.Due, validation.Required),
	)
}
