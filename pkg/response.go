package pkg

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every non-2xx answer.
// Errors is only filled for validation failures.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

// internalMessage is what clients see for any unmapped failure.
const internalMessage = "internal server error"

// JSON writes data as the response body with the given status.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

// NoContent answers 204 with an empty body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error translates a domain error into a status code and an error body.
// Unmapped errors are logged with their cause and answered with a generic 500.
func Error(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)

	resp := ErrorResponse{Error: err.Error()}

	var verr *ValidationError
	if errors.As(err, &verr) {
		resp.Errors = verr.Fields
	}

	entry := log.WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
		resp = ErrorResponse{Error: internalMessage}
	} else {
		entry.Warn("request rejected")
	}

	JSON(w, status, resp)
}

// ErrorWithMessage answers with a custom message and status.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// statusTable is the single place where error kinds become status codes.
// The first matching entry wins.
var statusTable = []struct {
	kind   error
	status int
}{
	{ErrValidation, http.StatusBadRequest},
	{ErrConflictingID, http.StatusBadRequest},
	{ErrInvalidArgument, http.StatusBadRequest},
	{ErrDuplicateEmail, http.StatusBadRequest},
	{ErrNotFound, http.StatusNotFound},
	{ErrNotAllowed, http.StatusConflict},
}

func mapErrorToStatus(err error) int {
	for _, entry := range statusTable {
		if errors.Is(err, entry.kind) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}
