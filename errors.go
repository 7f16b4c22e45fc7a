package resub

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPattern indicates the search expression is invalid or the
	// Regex was never compiled.
	ErrInvalidPattern = errors.New("invalid search pattern")
)

// CompileError wraps an expression compilation error with the expression
// as given by the caller.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("resub: compiling %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("resub: compile failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidPattern, so callers can test any
// compile failure with errors.Is.
func (e *CompileError) Is(target error) bool {
	return target == ErrInvalidPattern
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "resub: invalid config: " + e.Field + ": " + e.Message
}
