package handler

import (
	"errors"
	"net/http"

	"gradebook/internal/domain"
	"gradebook/internal/httputil"
)

// handleError converts domain errors to HTTP responses. This is the
// single classification point: forbidden always renders the uniform
// role-failure payload without a reason, not-found always renders the
// same generic body no matter which lookup or chain hop missed, and
// anything unrecognized becomes an opaque 500.
func handleError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondInvalidRole(w)
	case errors.As(err, &httpErr):
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
