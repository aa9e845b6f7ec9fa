// Package authz holds the single authorization decision point for
// submissions and the ownership chain resolution it depends on.
// Decisions come back as errors: nil is allow, ErrForbidden is deny,
// ErrNotFound means some chain link is missing and the caller must
// render it exactly like a nonexistent resource.
package authz

import (
	"context"
	"fmt"

	"gradebook/internal/domain"
	"gradebook/internal/domain/models"
	"gradebook/internal/domain/repositories"
)

// Action enumerates the protected submission operations. Content
// editing and grading are distinct actions with distinct owners: the
// student edits content, the course's instructor assigns the grade.
type Action string

const (
	ActionCreate      Action = "create"
	ActionRead        Action = "read"
	ActionEditContent Action = "editContent"
	ActionAssignGrade Action = "assignGrade"
	ActionDelete      Action = "delete"
	ActionList        Action = "list"
)

// ResourceRef identifies the target of an authorization decision.
// Exactly one field is set: SubmissionID for single-submission
// actions, AssignmentID for create and list.
type ResourceRef struct {
	SubmissionID string
	AssignmentID string
}

// Gate evaluates the per-resource, per-role policy. It performs no
// persistence fetches itself; ownership is resolved through the
// InstructorResolver and enrollment through the enrollment repository.
// The actor's role is trusted verbatim from the verified token.
type Gate struct {
	resolver       *InstructorResolver
	enrollmentRepo repositories.EnrollmentRepository
}

// NewGate creates a new authorization gate
func NewGate(resolver *InstructorResolver, enrollmentRepo repositories.EnrollmentRepository) *Gate {
	return &Gate{
		resolver:       resolver,
		enrollmentRepo: enrollmentRepo,
	}
}

// Authorize decides whether the actor may perform action on the
// referenced resource. Role checks that need no resource state are
// evaluated first, so a wrong-role caller always gets the same
// forbidden answer whether or not the resource exists.
func (g *Gate) Authorize(ctx context.Context, actor models.Actor, action Action, ref ResourceRef) error {
	if actor.ID == "" || !actor.Role.Valid() {
		return fmt.Errorf("unknown actor or role: %w", domain.ErrForbidden)
	}

	switch action {
	case ActionCreate:
		return g.authorizeCreate(ctx, actor, ref.AssignmentID)
	case ActionList:
		return g.authorizeList(ctx, actor, ref.AssignmentID)
	case ActionRead, ActionEditContent, ActionAssignGrade, ActionDelete:
		return g.authorizeOnSubmission(ctx, actor, action, ref.SubmissionID)
	default:
		return fmt.Errorf("unknown action %q: %w", action, domain.ErrForbidden)
	}
}

// authorizeCreate allows only a student enrolled in the course of the
// target assignment.
func (g *Gate) authorizeCreate(ctx context.Context, actor models.Actor, assignmentID string) error {
	if actor.Role != models.RoleStudent {
		return fmt.Errorf("only students may submit: %w", domain.ErrForbidden)
	}

	chain, err := g.resolver.FromAssignment(ctx, assignmentID)
	if err != nil {
		return err
	}

	enrolled, err := g.enrollmentRepo.Exists(ctx, chain.CourseID, actor.ID)
	if err != nil {
		return fmt.Errorf("check enrollment: %w", err)
	}
	if !enrolled {
		return fmt.Errorf("student not enrolled in course: %w", domain.ErrForbidden)
	}

	return nil
}

// authorizeList allows an admin, or the instructor owning the
// assignment's course.
func (g *Gate) authorizeList(ctx context.Context, actor models.Actor, assignmentID string) error {
	if actor.Role == models.RoleStudent {
		return fmt.Errorf("students may not list submissions: %w", domain.ErrForbidden)
	}

	chain, err := g.resolver.FromAssignment(ctx, assignmentID)
	if err != nil {
		return err
	}

	if actor.Role == models.RoleInstructor && chain.InstructorID != actor.ID {
		return fmt.Errorf("instructor does not own course: %w", domain.ErrForbidden)
	}

	return nil
}

// authorizeOnSubmission handles the single-submission actions. The
// chain is always resolved fully before an ownership comparison, so a
// submission whose parents are gone renders as not-found for every
// role, admin included.
func (g *Gate) authorizeOnSubmission(ctx context.Context, actor models.Actor, action Action, submissionID string) error {
	// Role screening before any fetch: wrong-role callers learn
	// nothing about whether the submission exists.
	switch action {
	case ActionRead:
		if actor.Role == models.RoleStudent {
			return fmt.Errorf("students may not read submissions directly: %w", domain.ErrForbidden)
		}
	case ActionEditContent:
		if actor.Role != models.RoleStudent {
			return fmt.Errorf("only the owning student may edit content: %w", domain.ErrForbidden)
		}
	case ActionAssignGrade:
		if actor.Role != models.RoleInstructor {
			return fmt.Errorf("only the course instructor may grade: %w", domain.ErrForbidden)
		}
	case ActionDelete:
		if actor.Role == models.RoleInstructor {
			return fmt.Errorf("instructors may not delete submissions: %w", domain.ErrForbidden)
		}
	}

	chain, err := g.resolver.FromSubmission(ctx, submissionID)
	if err != nil {
		return err
	}

	switch action {
	case ActionRead:
		if actor.Role == models.RoleInstructor && chain.InstructorID != actor.ID {
			return fmt.Errorf("instructor does not own course: %w", domain.ErrForbidden)
		}
	case ActionEditContent:
		if chain.Submission.StudentID != actor.ID {
			return fmt.Errorf("submission belongs to another student: %w", domain.ErrForbidden)
		}
	case ActionAssignGrade:
		if chain.InstructorID != actor.ID {
			return fmt.Errorf("instructor does not own course: %w", domain.ErrForbidden)
		}
	case ActionDelete:
		if actor.Role == models.RoleStudent && chain.Submission.StudentID != actor.ID {
			return fmt.Errorf("submission belongs to another student: %w", domain.ErrForbidden)
		}
	}

	return nil
}
