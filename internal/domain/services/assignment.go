package services

import (
	"context"
	"time"

	"gradebook/internal/domain/models"
)

// CreateAssignmentRequest represents a request to create an assignment
type CreateAssignmentRequest struct {
	CourseID string    `json:"course_id"`
	Title    string    `json:"title"`
	Points   int       `json:"points"`
	Due      time.Time `json:"due"`
}

// UpdateAssignmentRequest carries optional assignment mutations; nil
// fields are left unchanged
type UpdateAssignmentRequest struct {
	Title  *string    `json:"title"`
	Points *int       `json:"points"`
	Due    *time.Time `json:"due"`
}

// AssignmentService defines business logic operations for assignments
type AssignmentService interface {
	// CreateAssignment creates an assignment; admin or the instructor
	// owning the parent course
	CreateAssignment(ctx context.Context, actor models.Actor, req *CreateAssignmentRequest) (*models.Assignment, error)

	// GetAssignment retrieves an assignment by ID; public
	GetAssignment(ctx context.Context, id string) (*models.Assignment, error)

	// ListByCourse returns all assignments for a course; public
	ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error)

	// UpdateAssignment mutates an assignment; admin or the owning
	// instructor
	UpdateAssignment(ctx context.Context, actor models.Actor, id string, req *UpdateAssignmentRequest) error

	// DeleteAssignment removes an assignment; admin or the owning
	// instructor
	DeleteAssignment(ctx context.Context, actor models.Actor, id string) error
}
