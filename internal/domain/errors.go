package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// ValidationError is returned before any repository call is made: a
// submission with a missing required field never reaches the database.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q is required", e.Field)
}

// ConflictError blocks a delete that would orphan dependent records.
type ConflictError struct {
	Dependents int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("record has %d dependent records", e.Dependents)
}

// UploadError wraps a storage failure. Callers must abort the enclosing
// create/update rather than attach a partial URL.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return "upload failed: " + e.Err.Error() }
func (e *UploadError) Unwrap() error { return e.Err }

// TransitionError is returned when a status change violates the
// forward-only lifecycle of an entity.
type TransitionError struct {
	From, To string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}
