package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError reports a rejected input value. Field is empty for
// order-level failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a field-level ValidationError.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StateConflictError reports a state transition rejected by a guard,
// e.g. claiming a job that is already taken.
type StateConflictError struct {
	Reason string
}

func (e *StateConflictError) Error() string {
	return e.Reason
}

// StateConflict builds a StateConflictError.
func StateConflict(reason string) error {
	return &StateConflictError{Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStateConflict reports whether err is a StateConflictError.
func IsStateConflict(err error) bool {
	var se *StateConflictError
	return errors.As(err, &se)
}
