package utils

import "fmt"

// ValidationError represents an error occurring during query or configuration validation.
type ValidationError struct {
	Message string
}

// Error returns the error message string.
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new ValidationError with a specific message.
func NewValidationError(message string) error {
	return &ValidationError{
		Message: message,
	}
}

// NewValidationErrorf creates a new ValidationError with a formatted message.
//
// Parameters:
//   - format: The format string.
//   - args: Arguments for the format string.
//
// Returns:
//   - An error interface wrapping the ValidationError.
func NewValidationErrorf(format string, args ...interface{}) error {
	return &ValidationError{
		Message: fmt.Sprintf(format, args...),
	}
}

// ParseError is returned when a date or date-time string does not match any accepted layout.
type ParseError struct {
	Input  string
	Layout string
	Err    error
}

// Error returns a message naming the rejected input and the expected layout.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot parse %q as %s: %v", e.Input, e.Layout, e.Err)
	}
	return fmt.Sprintf("cannot parse %q as %s", e.Input, e.Layout)
}

// Unwrap exposes the underlying time parsing error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError for input that failed to match layout.
func NewParseError(input, layout string, err error) error {
	return &ParseError{
		Input:  input,
		Layout: layout,
		Err:    err,
	}
}
