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
	"gradebook/internal/pagination"
)

// courseService implements the CourseService interface
type courseService struct {
	courseRepo     repositories.CourseRepository
	userRepo       repositories.UserRepository
	enrollmentRepo repositories.EnrollmentRepository
	logger         *slog.Logger
}

// NewCourseService creates a new course service
func NewCourseService(
	courseRepo repositories.CourseRepository,
	userRepo repositories.UserRepository,
	enrollmentRepo repositories.EnrollmentRepository,
	logger *slog.Logger,
) services.CourseService {
	return &courseService{
		courseRepo:     courseRepo,
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// CreateCourse creates a new course; admin only
func (s *courseService) CreateCourse(ctx context.Context, actor models.Actor, req *services.CreateCourseRequest) (*models.Course, error) {
	if actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("only admins may create courses: %w", domain.ErrForbidden)
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.requireInstructor(ctx, req.InstructorID); err != nil {
		return nil, err
	}

	now := time.Now()
	course := &models.Course{
		ID:           uuid.New().String(),
		Subject:      req.Subject,
		Number:       req.Number,
		Title:        req.Title,
		Term:         req.Term,
		InstructorID: req.InstructorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course created",
		"id", course.ID,
		"subject", course.Subject,
		"number", course.Number,
		"instructor_id", course.InstructorID,
	)

	return course, nil
}

// GetCourse retrieves a course by ID
func (s *courseService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// ListCourses returns one page of the course catalog
func (s *courseService) ListCourses(ctx context.Context, page int) (*services.CourseListResponse, error) {
	totalCount, err := s.courseRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	pageSize := pagination.DefaultPageSize
	courses, err := s.courseRepo.List(ctx, pageSize, pagination.Offset(page, pageSize))
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.Course{}
	}

	totalPages := pagination.TotalPages(totalCount, pageSize)

	return &services.CourseListResponse{
		Courses:    courses,
		PageNumber: page,
		TotalPages: totalPages,
		PageSize:   pageSize,
		TotalCount: totalCount,
		Links:      pagination.NavLinks("/courses", page, totalPages),
	}, nil
}

// UpdateCourse mutates a course
func (s *courseService) UpdateCourse(ctx context.Context, actor models.Actor, id string, req *services.UpdateCourseRequest) error {
	if err := s.requireOwnerOrAdmin(ctx, actor, id); err != nil {
		return err
	}

	if req.InstructorID != nil {
		// Handing the course to another instructor is an
		// administrative act, not something the current owner can do.
		if actor.Role != models.RoleAdmin {
			return fmt.Errorf("only admins may reassign a course: %w", domain.ErrForbidden)
		}
		if err := s.requireInstructor(ctx, *req.InstructorID); err != nil {
			return err
		}
	}

	rows, err := s.courseRepo.Update(ctx, id, &repositories.CourseUpdate{
		Subject:      req.Subject,
		Number:       req.Number,
		Title:        req.Title,
		Term:         req.Term,
		InstructorID: req.InstructorID,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
	}

	s.logger.Info("course updated", "id", id)

	return nil
}

// DeleteCourse removes a course; admin only
func (s *courseService) DeleteCourse(ctx context.Context, actor models.Actor, id string) error {
	if actor.Role != models.RoleAdmin {
		return fmt.Errorf("only admins may delete courses: %w", domain.ErrForbidden)
	}

	rows, err := s.courseRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
	}

	s.logger.Info("course deleted", "id", id)

	return nil
}

// ListStudents returns the roster for a course
func (s *courseService) ListStudents(ctx context.Context, actor models.Actor, courseID string) ([]string, error) {
	if err := s.requireOwnerOrAdmin(ctx, actor, courseID); err != nil {
		return nil, err
	}

	studentIDs, err := s.enrollmentRepo.ListStudents(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if studentIDs == nil {
		studentIDs = []string{}
	}

	return studentIDs, nil
}

// EnrollStudent adds a student to the course
func (s *courseService) EnrollStudent(ctx context.Context, actor models.Actor, courseID, studentID string) error {
	if err := s.requireOwnerOrAdmin(ctx, actor, courseID); err != nil {
		return err
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if student.Role != models.RoleStudent {
		return fmt.Errorf("%w: user %s is not a student", domain.ErrValidation, studentID)
	}

	err = s.enrollmentRepo.Add(ctx, &models.Enrollment{
		CourseID:  courseID,
		StudentID: studentID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	s.logger.Info("student enrolled", "course_id", courseID, "student_id", studentID)

	return nil
}

// UnenrollStudent removes a student from the course
func (s *courseService) UnenrollStudent(ctx context.Context, actor models.Actor, courseID, studentID string) error {
	if err := s.requireOwnerOrAdmin(ctx, actor, courseID); err != nil {
		return err
	}

	rows, err := s.enrollmentRepo.Remove(ctx, courseID, studentID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("enrollment: %w", domain.ErrNotFound)
	}

	s.logger.Info("student unenrolled", "course_id", courseID, "student_id", studentID)

	return nil
}

// requireOwnerOrAdmin allows an admin, or the instructor owning the
// course. The course is fetched first, so a missing course renders as
// not-found for permitted roles.
func (s *courseService) requireOwnerOrAdmin(ctx context.Context, actor models.Actor, courseID string) error {
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

// requireInstructor verifies the referenced user exists and holds the
// instructor role
func (s *courseService) requireInstructor(ctx context.Context, instructorID string) error {
	instructor, err := s.userRepo.GetByID(ctx, instructorID)
	if err != nil {
		return fmt.Errorf("%w: instructor %s does not exist", domain.ErrValidation, instructorID)
	}
	if instructor.Role != models.RoleInstructor {
		return fmt.Errorf("%w: user %s is not an instructor", domain.ErrValidation, instructorID)
	}
	return nil
}

func (s *courseService) validateCreateRequest(req *services.CreateCourseRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Subject, validation.Required, validation.Length(1, 16)),
		validation.Field(&req.Number, validation.Required, validation.Length(1, 16)),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Term, validation.Required, validation.Length(1, 32)),
		validation.Field(&req.InstructorID, validation.Required),
	)
}
