package model

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired is returned when a mutating operation is attempted
	// without an authenticated user.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotFound is returned when a record does not exist or does not
	// belong to the requesting user.
	ErrNotFound = errors.New("record not found")

	// ErrCheckoutInFlight is returned when a checkout is attempted while
	// another checkout for the same cart is still running.
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

// ValidationError reports malformed input. No store mutation is attempted
// when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError reports a state conflict, e.g. a duplicate IMEI or a
// checkout referencing a product that has already been sold.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Reason
}

func NewConflictError(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}

// StoreError wraps a failure from one of the backing stores. The original
// message is surfaced as-is; no retry is attempted.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
