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
	"gradebook/internal/service/authz"
)

// submissionService implements the SubmissionService interface. Every
// operation is the same fixed sequence: gate decision, then the single
// persistence call, then outcome mapping. Nothing runs inside a
// transaction spanning the check and the mutation; a concurrent course
// reassignment between the two is an accepted race.
type submissionService struct {
	submissionRepo repositories.SubmissionRepository
	gate           *authz.Gate
	logger         *slog.Logger
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	submissionRepo repositories.SubmissionRepository,
	gate *authz.Gate,
	logger *slog.Logger,
) services.SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		gate:           gate,
		logger:         logger,
	}
}

// CreateSubmission stores a new submission for the acting student
func (s *submissionService) CreateSubmission(ctx context.Context, actor models.Actor, req *services.CreateSubmissionRequest) (*models.Submission, error) {
	// Gate first: a wrong-role caller gets the uniform forbidden
	// answer even when the body is also invalid.
	err := s.gate.Authorize(ctx, actor, authz.ActionCreate, authz.ResourceRef{AssignmentID: req.AssignmentID})
	if err != nil {
		return nil, err
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	submission := &models.Submission{
		ID:           uuid.New().String(),
		AssignmentID: req.AssignmentID,
		StudentID:    actor.ID,
		Content:      req.Content,
		SubmittedAt:  now,
		UpdatedAt:    now,
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.Info("submission created",
		"id", submission.ID,
		"assignment_id", submission.AssignmentID,
		"student_id", submission.StudentID,
	)

	return submission, nil
}

// GetSubmission retrieves a single submission
func (s *submissionService) GetSubmission(ctx context.Context, actor models.Actor, id string) (*models.Submission, error) {
	err := s.gate.Authorize(ctx, actor, authz.ActionRead, authz.ResourceRef{SubmissionID: id})
	if err != nil {
		return nil, err
	}

	return s.submissionRepo.GetByID(ctx, id)
}

// EditContent overwrites the content field of an owned submission
func (s *submissionService) EditContent(ctx context.Context, actor models.Actor, id, content string) error {
	err := s.gate.Authorize(ctx, actor, authz.ActionEditContent, authz.ResourceRef{SubmissionID: id})
	if err != nil {
		return err
	}

	if content == "" {
		return fmt.Errorf("%w: content cannot be blank", domain.ErrValidation)
	}

	rows, err := s.submissionRepo.UpdateContent(ctx, id, content)
	if err != nil {
		return err
	}
	if rows == 0 {
		// Authorized against a row that vanished before the write.
		// Stale IDs look exactly like missing ones.
		return fmt.Errorf("submission %s: %w", id, domain.ErrNotFound)
	}

	s.logger.Info("submission content updated", "id", id)

	return nil
}

// AssignGrade sets the grade field; instructor-owned action
func (s *submissionService) AssignGrade(ctx context.Context, actor models.Actor, id string, grade float64) error {
	err := s.gate.Authorize(ctx, actor, authz.ActionAssignGrade, authz.ResourceRef{SubmissionID: id})
	if err != nil {
		return err
	}

	if grade < 0 {
		return fmt.Errorf("%w: grade must not be negative", domain.ErrValidation)
	}

	rows, err := s.submissionRepo.UpdateGrade(ctx, id, grade)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("submission %s: %w", id, domain.ErrNotFound)
	}

	s.logger.Info("submission graded", "id", id, "grade", grade)

	return nil
}

// DeleteSubmission removes a submission
func (s *submissionService) DeleteSubmission(ctx context.Context, actor models.Actor, id string) error {
	err := s.gate.Authorize(ctx, actor, authz.ActionDelete, authz.ResourceRef{SubmissionID: id})
	if err != nil {
		return err
	}

	rows, err := s.submissionRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("submission %s: %w", id, domain.ErrNotFound)
	}

	s.logger.Info("submission deleted", "id", id)

	return nil
}

// ListByAssignment returns one page of an assignment's submissions
// together with the navigation links around it
func (s *submissionService) ListByAssignment(ctx context.Context, actor models.Actor, assignmentID string, page int) (*services.SubmissionListResponse, error) {
	err := s.gate.Authorize(ctx, actor, authz.ActionList, authz.ResourceRef{AssignmentID: assignmentID})
	if err != nil {
		return nil, err
	}

	totalCount, err := s.submissionRepo.CountByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	pageSize := pagination.DefaultPageSize
	submissions, err := s.submissionRepo.ListByAssignment(ctx, assignmentID, pageSize, pagination.Offset(page, pageSize))
	if err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []models.Submission{}
	}

	totalPages := pagination.TotalPages(totalCount, pageSize)
	basePath := fmt.Sprintf("/assignments/%s/submissions", assignmentID)

	return &services.SubmissionListResponse{
		Submissions: submissions,
		PageNumber:  page,
		TotalPages:  totalPages,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		Links:       pagination.NavLinks(basePath, page, totalPages),
	}, nil
}

func (s *submissionService) validateCreateRequest(req *services.CreateSubmissionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.AssignmentID, validation.Required),
		validation.Field(&req.Content, validation.Required),
	)
}
