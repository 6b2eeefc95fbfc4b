package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound          = errors.New("domain: not found")
	ErrConflict          = errors.New("domain: conflict")
	ErrUnauthorized      = errors.New("domain: unauthorized")
	ErrValidation        = errors.New("domain: validation failed")
	ErrInvalidTransition = errors.New("domain: invalid status transition")
)

// ValidationError reports a rejected input field. Unwraps to ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("domain: validation failed: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError reports a duplicate report, identifying the existing one.
// Unwraps to ErrConflict.
type ConflictError struct {
	ExistingID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("domain: conflicts with existing report %s", e.ExistingID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// TransitionError reports a forbidden lifecycle move. To is nil for deletion.
// Unwraps to ErrInvalidTransition.
type TransitionError struct {
	From ItemStatus
	To   *ItemStatus
}

func (e *TransitionError) Error() string {
	if e.To == nil {
		return fmt.Sprintf("domain: cannot delete item with status %q", e.From)
	}
	return fmt.Sprintf("domain: invalid status transition %q -> %q", e.From, *e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
