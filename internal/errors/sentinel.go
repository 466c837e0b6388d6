package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid configuration or flags.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a missing resource, config or rules file.
	ErrNotFound = errors.New("not found")

	// ErrCompile indicates the template compiler rejected a source file.
	ErrCompile = errors.New("compilation failed")
)
