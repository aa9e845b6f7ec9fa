package httputil

import (
	"encoding/json"
	"net/http"
)

// errorBody is the uniform error envelope used by every endpoint.
type errorBody struct {
	Error string `json:"error"`
}

// invalidRoleMessage is the fixed payload returned for every role or
// ownership failure, identical across all endpoints. It deliberately
// never says which check failed.
var invalidRoleMessage = errorBody{
	Error: "invalid role to perform this action",
}

// RespondJSON writes a JSON response with the given status code. It
// marshals first, preventing partial responses if encoding fails after
// headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondError writes a JSON error response of the form
// {"error": message}.
func RespondError(w http.ResponseWriter, status int, message string) {
	payload, err := json.Marshal(errorBody{Error: message})
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondInvalidRole writes the uniform 403 role-failure payload.
func RespondInvalidRole(w http.ResponseWriter) {
	RespondJSON(w, http.StatusForbidden, invalidRoleMessage)
}
