// Package httputil centralizes JSON response writing so handlers stay thin and
// every error crossing the transport boundary uses the same envelope.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "shaadi/pkg/domain-errors"
)

// ErrorBody is the JSON envelope for every failure response.
type ErrorBody struct {
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into an HTTP response. Causes wrapped
// inside internal errors are never rendered to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	WriteJSON(w, dErrors.ToHTTPStatus(code), ErrorBody{Message: dErrors.MessageOf(err)})
}

// Decode reads a JSON request body into T. On failure it writes a 400 response
// and returns ok=false; the handler should return immediately.
func Decode[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (T, bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		logger.WarnContext(r.Context(), "malformed request body", "error", err)
		WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "malformed request body"))
		return v, false
	}
	return v, true
}
