package authz

import (
	"context"
	"errors"
	"fmt"

	"gradebook/internal/domain"
	"gradebook/internal/domain/models"
	"gradebook/internal/domain/repositories"
)

// Chain is the resolved ownership path from a submission or assignment
// up to the owning instructor. Submission is nil when resolution
// started at an assignment.
type Chain struct {
	Submission   *models.Submission
	Assignment   *models.Assignment
	CourseID     string
	InstructorID string
}

// InstructorResolver walks parent links (Submission -> Assignment ->
// Course) to find the course's owning instructor. Each hop is a point
// lookup; any miss short-circuits to ErrNotFound without revealing
// which hop failed. No caching: every call re-walks the chain.
type InstructorResolver struct {
	submissionRepo repositories.SubmissionRepository
	assignmentRepo repositories.AssignmentRepository
	courseRepo     repositories.CourseRepository
}

// NewInstructorResolver creates a new ownership chain resolver
func NewInstructorResolver(
	submissionRepo repositories.SubmissionRepository,
	assignmentRepo repositories.AssignmentRepository,
	courseRepo repositories.CourseRepository,
) *InstructorResolver {
	return &InstructorResolver{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
	}
}

// FromSubmission resolves the full chain starting at a submission.
func (r *InstructorResolver) FromSubmission(ctx context.Context, submissionID string) (*Chain, error) {
	submission, err := r.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, collapseChainError(err)
	}

	chain, err := r.FromAssignment(ctx, submission.AssignmentID)
	if err != nil {
		return nil, err
	}

	chain.Submission = submission
	return chain, nil
}

// FromAssignment resolves the chain starting at an assignment.
func (r *InstructorResolver) FromAssignment(ctx context.Context, assignmentID string) (*Chain, error) {
	assignment, err := r.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, collapseChainError(err)
	}

	course, err := r.courseRepo.GetByID(ctx, assignment.CourseID)
	if err != nil {
		return nil, collapseChainError(err)
	}

	return &Chain{
		Assignment:   assignment,
		CourseID:     course.ID,
		InstructorID: course.InstructorID,
	}, nil
}

// collapseChainError folds every missing hop into one indistinct
// not-found, keeping the leaked-information surface minimal: a caller
// cannot tell whether the submission, its assignment, or the course
// was the missing link.
func collapseChainError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("ownership chain unresolved: %w", domain.ErrNotFound)
	}
	return fmt.Errorf("resolve ownership chain: %w", err)
}
