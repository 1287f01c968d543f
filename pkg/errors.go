// Package pkg holds utilities shared across layers.
// This file defines the domain-level errors.
//
// Errors are compared by identity, never by message:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Services wrap them with context (fmt.Errorf("%w: ...", pkg.ErrNotFound))
// and the response helpers map them to HTTP status codes.
package pkg

import (
	"errors"
	"strings"
)

// Domain-level errors.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrConflictingID   = errors.New("identifier must not be set")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDuplicateEmail  = errors.New("email already in use")
	ErrNotAllowed      = errors.New("operation not allowed")
	ErrInternal        = errors.New("internal error")
)

// ValidationError collects every field-level problem found in a request.
// It unwraps to ErrValidation.
type ValidationError struct {
	Fields []string
}

// Add records a field message.
func (e *ValidationError) Add(msg string) {
	e.Fields = append(e.Fields, msg)
}

// OrNil returns the error only when at least one field failed.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
