package handler

import (
	"log/slog"
	"net/http"

	"gradebook/internal/domain/services"
	"gradebook/internal/httputil"
)

// AssignmentHandler handles assignment HTTP requests
type AssignmentHandler struct {
	assignmentService services.AssignmentService
	logger            *slog.Logger
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService services.AssignmentService, logger *slog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// CreateAssignment creates an assignment under a course
// POST /assignments
func (h *AssignmentHandler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req services.CreateAssignmentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := httputil.GetActor(r)
	assignment, err := h.assignmentService.CreateAssignment(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{"id": assignment.ID})
}

// GetAssignment retrieves an assignment by ID
// GET /assignments/{id}
func (h *AssignmentHandler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Assignment ID")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.GetAssignment(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, assignment)
}

// ListByCourse returns all assignments for a course
// GET /courses/{id}/assignments
func (h *AssignmentHandler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := PathParam(w, r, "id", "Course ID")
	if !ok {
		return
	}

	assignments, err := h.assignmentService.ListByCourse(r.Context(), courseID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"assignments": assignments})
}

// UpdateAssignment mutates an assignment
// PATCH /assignments/{id}
func (h *AssignmentHandler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Assignment ID")
	if !ok {
		return
	}

	var req services.UpdateAssignmentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := httputil.GetActor(r)
	if err := h.assignmentService.UpdateAssignment(r.Context(), actor, id, &req); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAssignment removes an assignment
// DELETE /assignments/{id}
func (h *AssignmentHandler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Assignment ID")
	if !ok {
		return
	}

	actor := httputil.GetActor(r)
	if err := h.assignmentService.DeleteAssignment(r.Context(), actor, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
