package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
// Every error response from the API has the same shape:
//   {"error": "not_found", "message": "employee not found with id abc123"}
// so the frontend always knows what fields to expect, regardless of whether
// it's a 400, 404, or 500.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/employee-directory/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends a JSON response with the given status code.
// Headers and status MUST be set before the body — once Encode writes,
// the headers are on the wire.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — all we can do is log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status code.
//
// This is the ONLY place domain errors meet HTTP. The service layer returns
// apperror values; this function translates them:
//
//	ErrValidation     → 400 validation_error
//	ErrDuplicateEmail → 400 duplicate_email  (bad input per the API contract,
//	                                          not a 409 conflict)
//	ErrNotFound       → 404 not_found
//	anything else     → 500 internal_error
//
// errors.Is/As walk the wrapped chain, so services are free to annotate
// errors with fmt.Errorf("...: %w", err) on the way up.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrDuplicateEmail):
			status = http.StatusBadRequest
			errorType = "duplicate_email"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	// Unknown error — return a generic 500. Never expose internal error
	// details to the client; the raw message might contain paths or other
	// sensitive internals.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
