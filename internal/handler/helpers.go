package handler

import (
	"fmt"
	"net/http"

	"gradebook/internal/httputil"
)

// PathParam extracts a path parameter, writing a 400 response and
// returning ok=false when it is missing
func PathParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, fmt.Sprintf("%s is required", label))
		return "", false
	}
	return value, true
}

// HealthCheck reports liveness
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
