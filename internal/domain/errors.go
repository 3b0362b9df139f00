package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the service-wide error taxonomy. Every error surfaced
// by the service layer unwraps to exactly one of these, and the HTTP layer
// maps them to status codes uniformly across all resources.
var (
	// ErrNotFound indicates that the primary entity of an operation is absent.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed input or a failed business-rule check.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a state conflict, such as deleting an author who
	// still owns articles or reusing a region code.
	ErrConflict = errors.New("conflict")

	// ErrInternal indicates an unexpected storage or infrastructure fault.
	ErrInternal = errors.New("internal error")
)

// ValidationError aggregates every field-level problem found for one input.
// Validators collect all violations before this error is raised so a single
// request reports every problem at once.
type ValidationError struct {
	Messages []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Messages, "; "))
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError provides details about an absent entity.
type NotFoundError struct {
	Entity string
	ID     int64
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Entity, e.ID)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ConflictError provides details about a state conflict.
type ConflictError struct {
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return e.Message
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewValidationError creates a ValidationError from the collected messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// NewNotFoundError creates a NotFoundError for the given entity and id.
func NewNotFoundError(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// NewConflictError creates a ConflictError with optional structured details.
func NewConflictError(message string, details map[string]any) *ConflictError {
	return &ConflictError{Message: message, Details: details}
}
