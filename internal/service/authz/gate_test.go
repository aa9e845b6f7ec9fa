package authz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gradebook/internal/domain"
	"gradebook/internal/domain/models"
	"gradebook/internal/domain/repositories"
)

// fakeStore backs all four repositories with maps so the gate and
// resolver can be exercised without a database.
type fakeStore struct {
	submissions map[string]*models.Submission
	assignments map[string]*models.Assignment
	courses     map[string]*models.Course
	enrollments map[string]bool // courseID + "/" + studentID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		submissions: make(map[string]*models.Submission),
		assignments: make(map[string]*models.Assignment),
		courses:     make(map[string]*models.Course),
		enrollments: make(map[string]bool),
	}
}

func (s *fakeStore) enroll(courseID, studentID string) {
	s.enrollments[courseID+"/"+studentID] = true
}

// submissionRepo

type fakeSubmissionRepo struct{ store *fakeStore }

func (r *fakeSubmissionRepo) Create(ctx context.Context, sub *models.Submission) error {
	r.store.submissions[sub.ID] = sub
	return nil
}

func (r *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	sub, ok := r.store.submissions[id]
	if !ok {
		return nil, fmt.Errorf("submission %s: %w", id, domain.ErrNotFound)
	}
	return sub, nil
}

func (r *fakeSubmissionRepo) CountByAssignment(ctx context.Context, assignmentID string) (int, error) {
	count := 0
	for _, sub := range r.store.submissions {
		if sub.AssignmentID == assignmentID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubmissionRepo) ListByAssignment(ctx context.Context, assignmentID string, limit, offset int) ([]models.Submission, error) {
	var out []models.Submission
	for _, sub := range r.store.submissions {
		if sub.AssignmentID == assignmentID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) UpdateContent(ctx context.Context, id, content string) (int64, error) {
	if _, ok := r.store.submissions[id]; !ok {
		return 0, nil
	}
	r.store.submissions[id].Content = content
	return 1, nil
}

func (r *fakeSubmissionRepo) UpdateGrade(ctx context.Context, id string, grade float64) (int64, error) {
	if _, ok := r.store.submissions[id]; !ok {
		return 0, nil
	}
	r.store.submissions[id].Grade = &grade
	return 1, nil
}

func (r *fakeSubmissionRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := r.store.submissions[id]; !ok {
		return 0, nil
	}
	delete(r.store.submissions, id)
	return 1, nil
}

// assignmentRepo

type fakeAssignmentRepo struct{ store *fakeStore }

func (r *fakeAssignmentRepo) Create(ctx context.Context, a *models.Assignment) error {
	r.store.assignments[a.ID] = a
	return nil
}

func (r *fakeAssignmentRepo) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	a, ok := r.store.assignments[id]
	if !ok {
		return nil, fmt.Errorf("assignment %s: %w", id, domain.ErrNotFound)
	}
	return a, nil
}

func (r *fakeAssignmentRepo) ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range r.store.assignments {
		if a.CourseID == courseID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) Update(ctx context.Context, id string, upd *repositories.AssignmentUpdate) (int64, error) {
	if _, ok := r.store.assignments[id]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (r *fakeAssignmentRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := r.store.assignments[id]; !ok {
		return 0, nil
	}
	delete(r.store.assignments, id)
	return 1, nil
}

// courseRepo

type fakeCourseRepo struct{ store *fakeStore }

func (r *fakeCourseRepo) Create(ctx context.Context, c *models.Course) error {
	r.store.courses[c.ID] = c
	return nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	c, ok := r.store.courses[id]
	if !ok {
		return nil, fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

func (r *fakeCourseRepo) Count(ctx context.Context) (int, error) {
	return len(r.store.courses), nil
}

func (r *fakeCourseRepo) List(ctx context.Context, limit, offset int) ([]models.Course, error) {
	var out []models.Course
	for _, c := range r.store.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, id string, upd *repositories.CourseUpdate) (int64, error) {
	if _, ok := r.store.courses[id]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := r.store.courses[id]; !ok {
		return 0, nil
	}
	delete(r.store.courses, id)
	return 1, nil
}

// enrollmentRepo

type fakeEnrollmentRepo struct{ store *fakeStore }

func (r *fakeEnrollmentRepo) Add(ctx context.Context, e *models.Enrollment) error {
	r.store.enroll(e.CourseID, e.StudentID)
	return nil
}

func (r *fakeEnrollmentRepo) Remove(ctx context.Context, courseID, studentID string) (int64, error) {
	key := courseID + "/" + studentID
	if !r.store.enrollments[key] {
		return 0, nil
	}
	delete(r.store.enrollments, key)
	return 1, nil
}

func (r *fakeEnrollmentRepo) Exists(ctx context.Context, courseID, studentID string) (bool, error) {
	return r.store.enrollments[courseID+"/"+studentID], nil
}

func (r *fakeEnrollmentRepo) ListStudents(ctx context.Context, courseID string) ([]string, error) {
	var out []string
	for key, ok := range r.store.enrollments {
		if ok {
			out = append(out, key)
		}
	}
	return out, nil
}

// newTestGate wires a gate over a populated fake store:
// one course owned by instructor-1, one assignment in it, one
// submission by student-1 who is enrolled. student-2 exists but is not
// enrolled, instructor-2 owns nothing.
func newTestGate() (*Gate, *fakeStore) {
	store := newFakeStore()

	store.courses["course-1"] = &models.Course{
		ID:           "course-1",
		Subject:      "CS",
		Number:       "493",
		InstructorID: "instructor-1",
	}
	store.assignments["assignment-1"] = &models.Assignment{
		ID:       "assignment-1",
		CourseID: "course-1",
	}
	store.submissions["submission-1"] = &models.Submission{
		ID:           "submission-1",
		AssignmentID: "assignment-1",
		StudentID:    "student-1",
	}
	store.enroll("course-1", "student-1")

	resolver := NewInstructorResolver(
		&fakeSubmissionRepo{store},
		&fakeAssignmentRepo{store},
		&fakeCourseRepo{store},
	)
	return NewGate(resolver, &fakeEnrollmentRepo{store}), store
}

func actor(id string, role models.Role) models.Actor {
	return models.Actor{ID: id, Role: role}
}

func TestGateAuthorize(t *testing.T) {
	ctx := context.Background()

	onSubmission := ResourceRef{SubmissionID: "submission-1"}
	onAssignment := ResourceRef{AssignmentID: "assignment-1"}

	tests := []struct {
		name    string
		actor   models.Actor
		action  Action
		ref     ResourceRef
		wantErr error // nil means allow
	}{
		// create: only an enrolled student
		{"create/enrolled student", actor("student-1", models.RoleStudent), ActionCreate, onAssignment, nil},
		{"create/unenrolled student", actor("student-2", models.RoleStudent), ActionCreate, onAssignment, domain.ErrForbidden},
		{"create/instructor", actor("instructor-1", models.RoleInstructor), ActionCreate, onAssignment, domain.ErrForbidden},
		{"create/admin", actor("admin-1", models.RoleAdmin), ActionCreate, onAssignment, domain.ErrForbidden},

		// read: admin always, instructor only on an owned course
		{"read/admin", actor("admin-1", models.RoleAdmin), ActionRead, onSubmission, nil},
		{"read/owning instructor", actor("instructor-1", models.RoleInstructor), ActionRead, onSubmission, nil},
		{"read/other instructor", actor("instructor-2", models.RoleInstructor), ActionRead, onSubmission, domain.ErrForbidden},
		{"read/owning student", actor("student-1", models.RoleStudent), ActionRead, onSubmission, domain.ErrForbidden},

		// editContent: only the owning student
		{"editContent/owning student", actor("student-1", models.RoleStudent), ActionEditContent, onSubmission, nil},
		{"editContent/other student", actor("student-2", models.RoleStudent), ActionEditContent, onSubmission, domain.ErrForbidden},
		{"editContent/owning instructor", actor("instructor-1", models.RoleInstructor), ActionEditContent, onSubmission, domain.ErrForbidden},
		{"editContent/admin", actor("admin-1", models.RoleAdmin), ActionEditContent, onSubmission, domain.ErrForbidden},

		// assignGrade: only the instructor owning the course
		{"assignGrade/owning instructor", actor("instructor-1", models.RoleInstructor), ActionAssignGrade, onSubmission, nil},
		{"assignGrade/other instructor", actor("instructor-2", models.RoleInstructor), ActionAssignGrade, onSubmission, domain.ErrForbidden},
		{"assignGrade/owning student", actor("student-1", models.RoleStudent), ActionAssignGrade, onSubmission, domain.ErrForbidden},
		{"assignGrade/admin", actor("admin-1", models.RoleAdmin), ActionAssignGrade, onSubmission, domain.ErrForbidden},

		// delete: the owning student or an admin
		{"delete/owning student", actor("student-1", models.RoleStudent), ActionDelete, onSubmission, nil},
		{"delete/other student", actor("student-2", models.RoleStudent), ActionDelete, onSubmission, domain.ErrForbidden},
		{"delete/instructor", actor("instructor-1", models.RoleInstructor), ActionDelete, onSubmission, domain.ErrForbidden},
		{"delete/admin", actor("admin-1", models.RoleAdmin), ActionDelete, onSubmission, nil},

		// list: admin or the owning instructor
		{"list/admin", actor("admin-1", models.RoleAdmin), ActionList, onAssignment, nil},
		{"list/owning instructor", actor("instructor-1", models.RoleInstructor), ActionList, onAssignment, nil},
		{"list/other instructor", actor("instructor-2", models.RoleInstructor), ActionList, onAssignment, domain.ErrForbidden},
		{"list/student", actor("student-1", models.RoleStudent), ActionList, onAssignment, domain.ErrForbidden},

		// degenerate actors
		{"anonymous actor", models.Actor{}, ActionRead, onSubmission, domain.ErrForbidden},
		{"unknown role", actor("user-1", models.Role("superuser")), ActionRead, onSubmission, domain.ErrForbidden},
		{"unknown action", actor("admin-1", models.RoleAdmin), Action("purge"), onSubmission, domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, _ := newTestGate()

			err := gate.Authorize(ctx, tt.actor, tt.action, tt.ref)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected allow, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// A missing chain link must surface as not-found, regardless of the
// caller's role. An admin asking for a dangling submission gets the
// same answer as anyone else.
func TestGateAuthorizeChainMiss(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		actor  models.Actor
		mutate func(store *fakeStore)
	}{
		{"missing submission", actor("admin-1", models.RoleAdmin), func(store *fakeStore) {
			delete(store.submissions, "submission-1")
		}},
		{"missing assignment", actor("admin-1", models.RoleAdmin), func(store *fakeStore) {
			delete(store.assignments, "assignment-1")
		}},
		{"missing course", actor("instructor-1", models.RoleInstructor), func(store *fakeStore) {
			delete(store.courses, "course-1")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, store := newTestGate()
			tt.mutate(store)

			err := gate.Authorize(ctx, tt.actor, ActionRead, ResourceRef{SubmissionID: "submission-1"})
			if !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected not-found, got %v", err)
			}
			if errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("chain miss must not read as forbidden: %v", err)
			}
		})
	}
}

// Wrong-role callers are rejected before any lookup, so the answer is
// identical whether or not the submission exists.
func TestGateRoleScreenBeforeFetch(t *testing.T) {
	ctx := context.Background()
	gate, store := newTestGate()
	delete(store.submissions, "submission-1")

	err := gate.Authorize(ctx, actor("student-1", models.RoleStudent), ActionRead, ResourceRef{SubmissionID: "submission-1"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for wrong role on missing resource, got %v", err)
	}
}

func TestResolverFromSubmission(t *testing.T) {
	ctx := context.Background()
	_, store := newTestGate()
	resolver := NewInstructorResolver(
		&fakeSubmissionRepo{store},
		&fakeAssignmentRepo{store},
		&fakeCourseRepo{store},
	)

	chain, err := resolver.FromSubmission(ctx, "submission-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chain.Submission == nil || chain.Submission.ID != "submission-1" {
		t.Errorf("expected submission-1 on chain, got %+v", chain.Submission)
	}
	if chain.Assignment == nil || chain.Assignment.ID != "assignment-1" {
		t.Errorf("expected assignment-1 on chain, got %+v", chain.Assignment)
	}
	if chain.CourseID != "course-1" {
		t.Errorf("expected course-1, got %s", chain.CourseID)
	}
	if chain.InstructorID != "instructor-1" {
		t.Errorf("expected instructor-1, got %s", chain.InstructorID)
	}
}

func TestResolverFromAssignmentNoSubmission(t *testing.T) {
	ctx := context.Background()
	_, store := newTestGate()
	resolver := NewInstructorResolver(
		&fakeSubmissionRepo{store},
		&fakeAssignmentRepo{store},
		&fakeCourseRepo{store},
	)

	chain, err := resolver.FromAssignment(ctx, "assignment-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chain.Submission != nil {
		t.Errorf("expected nil submission when resolving from an assignment, got %+v", chain.Submission)
	}
	if chain.InstructorID != "instructor-1" {
		t.Errorf("expected instructor-1, got %s", chain.InstructorID)
	}
}
