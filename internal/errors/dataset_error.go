// Package errors provides standardized error types for dataset operations.
// This package defines DatasetError for consistent error handling across the
// loader, the query engine and the command line, with operation context and
// error wrapping support.
package errors

import (
	"fmt"
)

const (
	missingColumnMessage    = "required column not found in header"
	unknownAttributeMessage = "unknown attribute"
)

// DatasetError represents standardized errors across all dataset operations
type DatasetError struct {
	Op      string // Operation name (e.g., "Load", "WriteNames", "Export")
	Column  string // Column or attribute name if applicable
	Message string // Human-readable error description
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *DatasetError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	if e.Column != "" {
		return fmt.Sprintf("%s operation failed on column '%s': %s", e.Op, e.Column, e.Message)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause for error wrapping support
func (e *DatasetError) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is().
// Empty Op or Column fields on the target act as wildcards, so the
// predefined sentinels below match every error of their kind.
func (e *DatasetError) Is(target error) bool {
	de, ok := target.(*DatasetError)
	if !ok {
		return false
	}
	if e.Message != de.Message {
		return false
	}
	if de.Op != "" && e.Op != de.Op {
		return false
	}
	if de.Column != "" && e.Column != de.Column {
		return false
	}
	return true
}

// Common error constructors for consistent error creation

// NewMissingColumnError creates an error for a header lacking a required column
func NewMissingColumnError(op, column string) *DatasetError {
	return &DatasetError{
		Op:      op,
		Column:  column,
		Message: missingColumnMessage,
	}
}

// NewInvalidInputError creates an error for invalid operation inputs
func NewInvalidInputError(op, message string) *DatasetError {
	return &DatasetError{
		Op:      op,
		Message: message,
	}
}

// NewValidationError creates an error for input validation failures
func NewValidationError(op, column, message string) *DatasetError {
	return &DatasetError{
		Op:      op,
		Column:  column,
		Message: message,
	}
}

// NewUnknownAttributeError creates an error for attribute names that are neither hp nor speed
func NewUnknownAttributeError(op, name string) *DatasetError {
	return &DatasetError{
		Op:      op,
		Column:  name,
		Message: unknownAttributeMessage,
	}
}

// NewInternalError creates an error for internal operation failures
func NewInternalError(op string, cause error) *DatasetError {
	return &DatasetError{
		Op:      op,
		Message: "internal error occurred",
		Cause:   cause,
	}
}

// NewIOError wraps a failure of an external reader or writer
func NewIOError(op, message string, cause error) *DatasetError {
	return &DatasetError{
		Op:      op,
		Message: message,
		Cause:   cause,
	}
}

// Predefined error variables for common cases
var (
	// ErrMissingColumn matches every error built by NewMissingColumnError
	ErrMissingColumn = &DatasetError{
		Message: missingColumnMessage,
	}

	// ErrUnknownAttribute matches every error built by NewUnknownAttributeError
	ErrUnknownAttribute = &DatasetError{
		Message: unknownAttributeMessage,
	}

	// ErrNoHeader indicates a load over an empty sequence of raw records
	ErrNoHeader = &DatasetError{
		Op:      "Load",
		Message: "dataset has no header record",
	}

	// ErrNoData indicates that no records are loaded
	ErrNoData = &DatasetError{
		Message: "no data loaded",
	}
)
