// Package shared centralizes domain error translation to HTTP responses so
// every handler emits the same JSON error envelope.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "schwifty/pkg/domain-errors"
)

// errorResponse is the uniform error envelope.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteError renders err as a JSON error response. Errors carrying a domain
// code map to their HTTP status; anything else is an opaque 500.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := string(dErrors.CodeInternal)
	message := ""

	var de *dErrors.Error
	if errors.As(err, &de) {
		status = dErrors.ToHTTPStatus(de.Code)
		code = string(de.Code)
		message = de.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: code, Message: message})
}

// WriteJSON renders a success payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
