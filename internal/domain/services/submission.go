package services

import (
	"context"

	"gradebook/internal/domain/models"
	"gradebook/internal/pagination"
)

// CreateSubmissionRequest represents a request to create a submission.
// The student identity comes from the authenticated actor, never from
// the body.
type CreateSubmissionRequest struct {
	AssignmentID string `json:"assignment_id"`
	Content      string `json:"content"`
}

// SubmissionListResponse is the paginated submission listing body.
// The field set and names are fixed for endpoint compatibility.
type SubmissionListResponse struct {
	Submissions []models.Submission `json:"submissions"`
	PageNumber  int                 `json:"pageNumber"`
	TotalPages  int                 `json:"totalPages"`
	PageSize    int                 `json:"pageSize"`
	TotalCount  int                 `json:"totalCount"`
	Links       pagination.Links    `json:"links"`
}

// SubmissionService orchestrates authorize-then-persist for every
// submission operation. Every method consults the authorization gate
// before touching the repository.
type SubmissionService interface {
	// CreateSubmission stores a new submission for the acting student
	CreateSubmission(ctx context.Context, actor models.Actor, req *CreateSubmissionRequest) (*models.Submission, error)

	// GetSubmission retrieves a single submission
	GetSubmission(ctx context.Context, actor models.Actor, id string) (*models.Submission, error)

	// EditContent overwrites the content field of an owned submission
	EditContent(ctx context.Context, actor models.Actor, id, content string) error

	// AssignGrade sets the grade field; instructor-owned action
	AssignGrade(ctx context.Context, actor models.Actor, id string, grade float64) error

	// DeleteSubmission removes a submission
	DeleteSubmission(ctx context.Context, actor models.Actor, id string) error

	// ListByAssignment returns one page of an assignment's submissions
	ListByAssignment(ctx context.Context, actor models.Actor, assignmentID string, page int) (*SubmissionListResponse, error)
}
