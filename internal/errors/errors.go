// Package errors provides sentinel errors, detailed errors and exit codes
// for the tagloader CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// DetailError captures structured error information for terminal output.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path the error is attributed to (optional).
	Location string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewCompileError attributes a compiler failure to the source file.
// The compiler's error stays reachable through errors.Is and errors.As.
func NewCompileError(location string, cause error) error {
	return &DetailError{
		Type:     "compilation failed",
		Message:  cause.Error(),
		Location: location,
		Cause:    cause,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid configuration or arguments.
	ExitValidationError = 2

	// ExitNotFound indicates a resource or file was not found.
	ExitNotFound = 5

	// ExitCompileError indicates the template compiler failed.
	ExitCompileError = 7
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the error was already reported to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromError determines the exit code for err.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrCompile):
		return ExitCompileError
	default:
		return ExitGeneralError
	}
}
