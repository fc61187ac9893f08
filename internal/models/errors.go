// ABOUTME: Error taxonomy shared by services and storage engines.
// ABOUTME: Sentinels are matched with errors.Is; constructors attach context.
package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput means caller-supplied data violates a precondition.
	ErrInvalidInput = errors.New("invalid input")
	// ErrResourceNotFound means a referenced entity does not exist.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrDuplicateResource means a uniqueness constraint would be violated.
	ErrDuplicateResource = errors.New("duplicate resource")
	// ErrDatabaseOperation means the storage engine failed.
	ErrDatabaseOperation = errors.New("database operation failed")
)

// InvalidInput returns an error matching ErrInvalidInput.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound returns an error matching ErrResourceNotFound.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrResourceNotFound, fmt.Sprintf(format, args...))
}

// Duplicate returns an error matching ErrDuplicateResource.
func Duplicate(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDuplicateResource, fmt.Sprintf(format, args...))
}

// DatabaseError wraps an engine failure. The result matches both
// ErrDatabaseOperation and cause.
func DatabaseError(op string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrDatabaseOperation, op)
	}
	return fmt.Errorf("%w: %s: %w", ErrDatabaseOperation, op, cause)
}

// KindOf names the taxonomy category of err, or "" if it has none.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInput"
	case errors.Is(err, ErrResourceNotFound):
		return "ResourceNotFound"
	case errors.Is(err, ErrDuplicateResource):
		return "DuplicateResource"
	case errors.Is(err, ErrDatabaseOperation):
		return "DatabaseOperation"
	default:
		return ""
	}
}
