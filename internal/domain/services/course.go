package services

import (
	"context"

	"gradebook/internal/domain/models"
	"gradebook/internal/pagination"
)

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Subject      string `json:"subject"`
	Number       string `json:"number"`
	Title        string `json:"title"`
	Term         string `json:"term"`
	InstructorID string `json:"instructor_id"`
}

// UpdateCourseRequest carries optional course mutations; nil fields
// are left unchanged
type UpdateCourseRequest struct {
	Subject      *string `json:"subject"`
	Number       *string `json:"number"`
	Title        *string `json:"title"`
	Term         *string `json:"term"`
	InstructorID *string `json:"instructor_id"`
}

// CourseListResponse is the paginated course listing body
type CourseListResponse struct {
	Courses    []models.Course  `json:"courses"`
	PageNumber int              `json:"pageNumber"`
	TotalPages int              `json:"totalPages"`
	PageSize   int              `json:"pageSize"`
	TotalCount int              `json:"totalCount"`
	Links      pagination.Links `json:"links"`
}

// CourseService defines business logic operations for courses and the
// enrollment relation hanging off them
type CourseService interface {
	// CreateCourse creates a new course; admin only
	CreateCourse(ctx context.Context, actor models.Actor, req *CreateCourseRequest) (*models.Course, error)

	// GetCourse retrieves a course by ID; public
	GetCourse(ctx context.Context, id string) (*models.Course, error)

	// ListCourses returns one page of the course catalog; public
	ListCourses(ctx context.Context, page int) (*CourseListResponse, error)

	// UpdateCourse mutates a course; admin or the owning instructor.
	// Instructor reassignment is admin only.
	UpdateCourse(ctx context.Context, actor models.Actor, id string, req *UpdateCourseRequest) error

	// DeleteCourse removes a course; admin only
	DeleteCourse(ctx context.Context, actor models.Actor, id string) error

	// ListStudents returns the roster; admin or the owning instructor
	ListStudents(ctx context.Context, actor models.Actor, courseID string) ([]string, error)

	// EnrollStudent adds a student to the course; admin or the owning
	// instructor
	EnrollStudent(ctx context.Context, actor models.Actor, courseID, studentID string) error

	// UnenrollStudent removes a student from the course; admin or the
	// owning instructor
	UnenrollStudent(ctx context.Context, actor models.Actor, courseID, studentID string) error
}
