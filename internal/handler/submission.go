package handler

import (
	"log/slog"
	"net/http"

	"gradebook/internal/domain/services"
	"gradebook/internal/httputil"
	"gradebook/internal/pagination"
)

// SubmissionHandler handles submission HTTP requests
type SubmissionHandler struct {
	submissionService services.SubmissionService
	logger            *slog.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService services.SubmissionService, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		logger:            logger,
	}
}

// CreateSubmission stores a new submission for the acting student
// POST /assignments/{assignmentId}/submissions
func (h *SubmissionHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	assignmentID, ok := PathParam(w, r, "assignmentId", "Assignment ID")
	if !ok {
		return
	}

	var req services.CreateSubmissionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// The path, not the body, decides which assignment this lands on.
	req.AssignmentID = assignmentID

	actor := httputil.GetActor(r)
	submission, err := h.submissionService.CreateSubmission(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{"id": submission.ID})
}

// GetSubmission retrieves a single submission
// GET /submissions/{id}
func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Submission ID")
	if !ok {
		return
	}

	actor := httputil.GetActor(r)
	submission, err := h.submissionService.GetSubmission(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, submission)
}

// editContentRequest is the body for editing submission content. Only
// the content field is read; anything else in the body is ignored.
type editContentRequest struct {
	Content string `json:"content"`
}

// EditContent overwrites the content of an owned submission
// PATCH /submissions/{id}
func (h *SubmissionHandler) EditContent(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Submission ID")
	if !ok {
		return
	}

	var req editContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := httputil.GetActor(r)
	if err := h.submissionService.EditContent(r.Context(), actor, id, req.Content); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// assignGradeRequest is the body for grading. Only the grade field is
// read.
type assignGradeRequest struct {
	Grade *float64 `json:"grade"`
}

// AssignGrade sets the grade on a submission
// PATCH /submissions/{id}/grade
func (h *SubmissionHandler) AssignGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Submission ID")
	if !ok {
		return
	}

	var req assignGradeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil || req.Grade == nil {
		httputil.RespondError(w, http.StatusBadRequest, "grade is required")
		return
	}

	actor := httputil.GetActor(r)
	if err := h.submissionService.AssignGrade(r.Context(), actor, id, *req.Grade); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteSubmission removes a submission
// DELETE /submissions/{id}
func (h *SubmissionHandler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Submission ID")
	if !ok {
		return
	}

	actor := httputil.GetActor(r)
	if err := h.submissionService.DeleteSubmission(r.Context(), actor, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByAssignment returns one page of an assignment's submissions
// GET /assignments/{assignmentId}/submissions?page=N
func (h *SubmissionHandler) ListByAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, ok := PathParam(w, r, "assignmentId", "Assignment ID")
	if !ok {
		return
	}

	page := pagination.ParsePage(r.URL.Query().Get("page"))

	actor := httputil.GetActor(r)
	response, err := h.submissionService.ListByAssignment(r.Context(), actor, assignmentID, page)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, response)
}
