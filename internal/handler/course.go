package handler

import (
	"log/slog"
	"net/http"

	"gradebook/internal/domain/services"
	"gradebook/internal/httputil"
	"gradebook/internal/pagination"
)

// CourseHandler handles course and enrollment HTTP requests
type CourseHandler struct {
	courseService services.CourseService
	logger        *slog.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService services.CourseService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		logger:        logger,
	}
}

// ListCourses returns one page of the course catalog
// GET /courses?page=N
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	page := pagination.ParsePage(r.URL.Query().Get("page"))

	response, err := h.courseService.ListCourses(r.Context(), page)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, response)
}

// CreateCourse creates a new course
// POST /courses
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCourseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := httputil.GetActor(r)
	course, err := h.courseService.CreateCourse(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{"id": course.ID})
}

// GetCourse retrieves a course by ID
// GET /courses/{id}
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Course ID")
	if !ok {
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, course)
}

// UpdateCourse mutates a course
// PATCH /courses/{id}
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Course ID")
	if !ok {
		return
	}

	var req services.UpdateCourseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := httputil.GetActor(r)
	if err := h.courseService.UpdateCourse(r.Context(), actor, id, &req); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCourse removes a course
// DELETE /courses/{id}
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Course ID")
	if !ok {
		return
	}

	actor := httputil.GetActor(r)
	if err := h.courseService.DeleteCourse(r.Context(), actor, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListStudents returns the roster for a course
// GET /courses/{id}/students
func (h *CourseHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Course ID")
	if !ok {
		return
	}

	actor := httputil.GetActor(r)
	studentIDs, err := h.courseService.ListStudents(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]string{"students": studentIDs})
}

// enrollRequest is the body for enrolling a student
type enrollRequest struct {
	StudentID string `json:"student_id"`
}

// EnrollStudent adds a student to the course
// POST /courses/{id}/students
func (h *CourseHandler) EnrollStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Course ID")
	if !ok {
		return
	}

	var req enrollRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil || req.StudentID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "student_id is required")
		return
	}

	actor := httputil.GetActor(r)
	if err := h.courseService.EnrollStudent(r.Context(), actor, id, req.StudentID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnenrollStudent removes a student from the course
// DELETE /courses/{id}/students/{studentId}
func (h *CourseHandler) UnenrollStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Course ID")
	if !ok {
		return
	}
	studentID, ok := PathParam(w, r, "studentId", "Student ID")
	if !ok {
		return
	}

	actor := httputil.GetActor(r)
	if err := h.courseService.UnenrollStudent(r.Context(), actor, id, studentID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
