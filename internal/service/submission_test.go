package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"gradebook/internal/domain"
	"gradebook/internal/domain/models"
	"gradebook/internal/domain/repositories"
	"gradebook/internal/domain/services"
	"gradebook/internal/service/authz"
)

// memRepos holds all in-memory repositories over one shared dataset.
type memRepos struct {
	submissions map[string]*models.Submission
	assignments map[string]*models.Assignment
	courses     map[string]*models.Course
	enrolled    map[string]bool
}

func newMemRepos() *memRepos {
	return &memRepos{
		submissions: make(map[string]*models.Submission),
		assignments: make(map[string]*models.Assignment),
		courses:     make(map[string]*models.Course),
		enrolled:    make(map[string]bool),
	}
}

type memSubmissionRepo struct{ m *memRepos }

func (r *memSubmissionRepo) Create(ctx context.Context, sub *models.Submission) error {
	r.m.submissions[sub.ID] = sub
	return nil
}

func (r *memSubmissionRepo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	sub, ok := r.m.submissions[id]
	if !ok {
		return nil, fmt.Errorf("submission %s: %w", id, domain.ErrNotFound)
	}
	return sub, nil
}

func (r *memSubmissionRepo) CountByAssignment(ctx context.Context, assignmentID string) (int, error) {
	count := 0
	for _, sub := range r.m.submissions {
		if sub.AssignmentID == assignmentID {
			count++
		}
	}
	return count, nil
}

func (r *memSubmissionRepo) ListByAssignment(ctx context.Context, assignmentID string, limit, offset int) ([]models.Submission, error) {
	var all []models.Submission
	for _, sub := range r.m.submissions {
		if sub.AssignmentID == assignmentID {
			all = append(all, *sub)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].SubmittedAt.Equal(all[j].SubmittedAt) {
			return all[i].SubmittedAt.Before(all[j].SubmittedAt)
		}
		return all[i].ID < all[j].ID
	})
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memSubmissionRepo) UpdateContent(ctx context.Context, id, content string) (int64, error) {
	sub, ok := r.m.submissions[id]
	if !ok {
		return 0, nil
	}
	sub.Content = content
	return 1, nil
}

func (r *memSubmissionRepo) UpdateGrade(ctx context.Context, id string, grade float64) (int64, error) {
	sub, ok := r.m.submissions[id]
	if !ok {
		return 0, nil
	}
	sub.Grade = &grade
	return 1, nil
}

func (r *memSubmissionRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := r.m.submissions[id]; !ok {
		return 0, nil
	}
	delete(r.m.submissions, id)
	return 1, nil
}

type memAssignmentRepo struct{ m *memRepos }

func (r *memAssignmentRepo) Create(ctx context.Context, a *models.Assignment) error {
	r.m.assignments[a.ID] = a
	return nil
}

func (r *memAssignmentRepo) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	a, ok := r.m.assignments[id]
	if !ok {
		return nil, fmt.Errorf("assignment %s: %w", id, domain.ErrNotFound)
	}
	return a, nil
}

func (r *memAssignmentRepo) ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range r.m.assignments {
		if a.CourseID == courseID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAssignmentRepo) Update(ctx context.Context, id string, upd *repositories.AssignmentUpdate) (int64, error) {
	if _, ok := r.m.assignments[id]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (r *memAssignmentRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := r.m.assignments[id]; !ok {
		return 0, nil
	}
	delete(r.m.assignments, id)
	return 1, nil
}

type memCourseRepo struct{ m *memRepos }

func (r *memCourseRepo) Create(ctx context.Context, c *models.Course) error {
	r.m.courses[c.ID] = c
	return nil
}

func (r *memCourseRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	c, ok := r.m.courses[id]
	if !ok {
		return nil, fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

func (r *memCourseRepo) Count(ctx context.Context) (int, error) {
	return len(r.m.courses), nil
}

func (r *memCourseRepo) List(ctx context.Context, limit, offset int) ([]models.Course, error) {
	var out []models.Course
	for _, c := range r.m.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCourseRepo) Update(ctx context.Context, id string, upd *repositories.CourseUpdate) (int64, error) {
	if _, ok := r.m.courses[id]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (r *memCourseRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := r.m.courses[id]; !ok {
		return 0, nil
	}
	delete(r.m.courses, id)
	return 1, nil
}

type memEnrollmentRepo struct{ m *memRepos }

func (r *memEnrollmentRepo) Add(ctx context.Context, e *models.Enrollment) error {
	r.m.enrolled[e.CourseID+"/"+e.StudentID] = true
	return nil
}

func (r *memEnrollmentRepo) Remove(ctx context.Context, courseID, studentID string) (int64, error) {
	key := courseID + "/" + studentID
	if !r.m.enrolled[key] {
		return 0, nil
	}
	delete(r.m.enrolled, key)
	return 1, nil
}

func (r *memEnrollmentRepo) Exists(ctx context.Context, courseID, studentID string) (bool, error) {
	return r.m.enrolled[courseID+"/"+studentID], nil
}

func (r *memEnrollmentRepo) ListStudents(ctx context.Context, courseID string) ([]string, error) {
	return nil, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newSubmissionFixture builds a service over one course (instructor-1),
// one assignment, and an enrolled student-1 with one submission.
func newSubmissionFixture() (services.SubmissionService, *memRepos) {
	m := newMemRepos()
	m.courses["course-1"] = &models.Course{ID: "course-1", InstructorID: "instructor-1"}
	m.assignments["assignment-1"] = &models.Assignment{ID: "assignment-1", CourseID: "course-1"}
	m.submissions["submission-1"] = &models.Submission{
		ID:           "submission-1",
		AssignmentID: "assignment-1",
		StudentID:    "student-1",
		Content:      "first draft",
		SubmittedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	m.enrolled["course-1/student-1"] = true

	subRepo := &memSubmissionRepo{m}
	resolver := authz.NewInstructorResolver(subRepo, &memAssignmentRepo{m}, &memCourseRepo{m})
	gate := authz.NewGate(resolver, &memEnrollmentRepo{m})

	return NewSubmissionService(subRepo, gate, discardLogger()), m
}

func TestCreateSubmission(t *testing.T) {
	ctx := context.Background()
	svc, m := newSubmissionFixture()

	sub, err := svc.CreateSubmission(ctx, models.Actor{ID: "student-1", Role: models.RoleStudent}, &services.CreateSubmissionRequest{
		AssignmentID: "assignment-1",
		Content:      "my answer",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.ID == "" {
		t.Error("expected generated submission ID")
	}
	if sub.StudentID != "student-1" {
		t.Errorf("expected student taken from actor, got %s", sub.StudentID)
	}
	if _, ok := m.submissions[sub.ID]; !ok {
		t.Error("submission not persisted")
	}
}

func TestCreateSubmissionValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSubmissionFixture()
	student := models.Actor{ID: "student-1", Role: models.RoleStudent}

	_, err := svc.CreateSubmission(ctx, student, &services.CreateSubmissionRequest{AssignmentID: "assignment-1"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for blank content, got %v", err)
	}
}

// A wrong-role caller gets the uniform forbidden answer even when the
// request body is also invalid; the gate runs before any validation.
func TestForbiddenBeforeValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSubmissionFixture()

	tests := []struct {
		name string
		call func() error
	}{
		{"create by instructor with blank content", func() error {
			_, err := svc.CreateSubmission(ctx, models.Actor{ID: "instructor-1", Role: models.RoleInstructor},
				&services.CreateSubmissionRequest{AssignmentID: "assignment-1"})
			return err
		}},
		{"create by admin with blank content", func() error {
			_, err := svc.CreateSubmission(ctx, models.Actor{ID: "admin-1", Role: models.RoleAdmin},
				&services.CreateSubmissionRequest{AssignmentID: "assignment-1"})
			return err
		}},
		{"edit by instructor with blank content", func() error {
			return svc.EditContent(ctx, models.Actor{ID: "instructor-1", Role: models.RoleInstructor}, "submission-1", "")
		}},
		{"grade by student with negative grade", func() error {
			return svc.AssignGrade(ctx, models.Actor{ID: "student-1", Role: models.RoleStudent}, "submission-1", -5)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected forbidden, got %v", err)
			}
			if errors.Is(err, domain.ErrValidation) {
				t.Fatalf("validation must not preempt the role check: %v", err)
			}
		})
	}
}

func TestCreateSubmissionUnknownAssignment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSubmissionFixture()

	_, err := svc.CreateSubmission(ctx, models.Actor{ID: "student-1", Role: models.RoleStudent}, &services.CreateSubmissionRequest{
		AssignmentID: "no-such-assignment",
		Content:      "answer",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestEditContent(t *testing.T) {
	ctx := context.Background()
	svc, m := newSubmissionFixture()

	err := svc.EditContent(ctx, models.Actor{ID: "student-1", Role: models.RoleStudent}, "submission-1", "revised")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.submissions["submission-1"].Content; got != "revised" {
		t.Errorf("expected revised content, got %q", got)
	}
}

func TestEditContentBlank(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSubmissionFixture()

	err := svc.EditContent(ctx, models.Actor{ID: "student-1", Role: models.RoleStudent}, "submission-1", "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAssignGrade(t *testing.T) {
	ctx := context.Background()
	svc, m := newSubmissionFixture()

	err := svc.AssignGrade(ctx, models.Actor{ID: "instructor-1", Role: models.RoleInstructor}, "submission-1", 92.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	grade := m.submissions["submission-1"].Grade
	if grade == nil || *grade != 92.5 {
		t.Errorf("expected grade 92.5, got %v", grade)
	}
}

func TestAssignGradeNegative(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSubmissionFixture()

	err := svc.AssignGrade(ctx, models.Actor{ID: "instructor-1", Role: models.RoleInstructor}, "submission-1", -1)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAssignGradeByAdminForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSubmissionFixture()

	err := svc.AssignGrade(ctx, models.Actor{ID: "admin-1", Role: models.RoleAdmin}, "submission-1", 80)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDeleteSubmission(t *testing.T) {
	ctx := context.Background()
	svc, m := newSubmissionFixture()

	err := svc.DeleteSubmission(ctx, models.Actor{ID: "admin-1", Role: models.RoleAdmin}, "submission-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.submissions["submission-1"]; ok {
		t.Error("submission still present after delete")
	}
}

func TestGetSubmissionMissingParent(t *testing.T) {
	ctx := context.Background()
	svc, m := newSubmissionFixture()
	delete(m.assignments, "assignment-1")

	_, err := svc.GetSubmission(ctx, models.Actor{ID: "admin-1", Role: models.RoleAdmin}, "submission-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found for dangling submission, got %v", err)
	}
}

func TestListByAssignmentPagination(t *testing.T) {
	ctx := context.Background()
	svc, m := newSubmissionFixture()
	delete(m.submissions, "submission-1")

	// 25 submissions: 3 pages of 10
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("sub-%02d", i)
		m.submissions[id] = &models.Submission{
			ID:           id,
			AssignmentID: "assignment-1",
			StudentID:    "student-1",
			SubmittedAt:  base.Add(time.Duration(i) * time.Minute),
		}
	}

	admin := models.Actor{ID: "admin-1", Role: models.RoleAdmin}

	resp, err := svc.ListByAssignment(ctx, admin, "assignment-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalCount != 25 {
		t.Errorf("expected totalCount 25, got %d", resp.TotalCount)
	}
	if resp.TotalPages != 3 {
		t.Errorf("expected totalPages 3, got %d", resp.TotalPages)
	}
	if resp.PageNumber != 2 || resp.PageSize != 10 {
		t.Errorf("unexpected page metadata: %+v", resp)
	}
	if len(resp.Submissions) != 10 {
		t.Fatalf("expected 10 submissions on page 2, got %d", len(resp.Submissions))
	}
	if resp.Submissions[0].ID != "sub-10" {
		t.Errorf("expected window to start at sub-10, got %s", resp.Submissions[0].ID)
	}

	// Middle page carries all four links
	if resp.Links.NextPage != "/assignments/assignment-1/submissions?page=3" {
		t.Errorf("unexpected nextPage: %q", resp.Links.NextPage)
	}
	if resp.Links.LastPage != "/assignments/assignment-1/submissions?page=3" {
		t.Errorf("unexpected lastPage: %q", resp.Links.LastPage)
	}
	if resp.Links.PrevPage != "/assignments/assignment-1/submissions?page=1" {
		t.Errorf("unexpected prevPage: %q", resp.Links.PrevPage)
	}
	if resp.Links.FirstPage != "/assignments/assignment-1/submissions?page=1" {
		t.Errorf("unexpected firstPage: %q", resp.Links.FirstPage)
	}

	// Last page: 5 rows, no forward links
	resp, err = svc.ListByAssignment(ctx, admin, "assignment-1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Submissions) != 5 {
		t.Errorf("expected 5 submissions on page 3, got %d", len(resp.Submissions))
	}
	if resp.Links.NextPage != "" || resp.Links.LastPage != "" {
		t.Errorf("expected no forward links on last page, got %+v", resp.Links)
	}

	// Beyond the last page: empty slice, not an error
	resp, err = svc.ListByAssignment(ctx, admin, "assignment-1", 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Submissions == nil || len(resp.Submissions) != 0 {
		t.Errorf("expected empty non-nil slice beyond last page, got %v", resp.Submissions)
	}
}

func TestListByAssignmentStudentForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSubmissionFixture()

	_, err := svc.ListByAssignment(ctx, models.Actor{ID: "student-1", Role: models.RoleStudent}, "assignment-1", 1)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
