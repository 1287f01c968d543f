package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &ValidationError{Fields: []string{"login is required"}}, http.StatusBadRequest},
		{"conflicting id", fmt.Errorf("%w: id 5", ErrConflictingID), http.StatusBadRequest},
		{"invalid argument", fmt.Errorf("%w: count", ErrInvalidArgument), http.StatusBadRequest},
		{"duplicate email", fmt.Errorf("%w: a@b.c", ErrDuplicateEmail), http.StatusBadRequest},
		{"not found", fmt.Errorf("%w: user 1", ErrNotFound), http.StatusNotFound},
		{"not allowed", fmt.Errorf("%w: already friends", ErrNotAllowed), http.StatusConflict},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestError_ValidationBodyListsFields(t *testing.T) {
	verr := &ValidationError{}
	verr.Add("email is required")
	verr.Add("login is required")

	rec := httptest.NewRecorder()
	Error(rec, verr)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"email is required", "login is required"}, body.Errors)
	assert.Contains(t, body.Error, "validation failed")
}

func TestError_InternalHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.New("sql: connection refused"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, internalMessage, body.Error)
}

func TestValidationError_OrNil(t *testing.T) {
	verr := &ValidationError{}
	assert.NoError(t, verr.OrNil())

	verr.Add("duration must be positive")
	err := verr.OrNil()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
