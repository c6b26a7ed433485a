// Package errors provides a lightweight structured error type (MDStreamError)
// for category-based classification and exit code mapping in the CLI.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of an error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// I/O errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryOutput     ErrorCategory = "output"

	// Runtime errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// MDStreamError is a structured error with category, severity and context
type MDStreamError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for MDStreamError
type ContextFields map[string]any

// Error implements the error interface
func (e *MDStreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *MDStreamError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *MDStreamError) WithContext(key string, value any) *MDStreamError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new MDStreamError
func New(category ErrorCategory, severity ErrorSeverity, message string) *MDStreamError {
	return &MDStreamError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new MDStreamError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *MDStreamError {
	return &MDStreamError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the first MDStreamError in err's chain.
func As(err error) (*MDStreamError, bool) {
	var mse *MDStreamError
	if errors.As(err, &mse) {
		return mse, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if mse, ok := As(err); ok {
		return mse.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a MDStreamError
func GetCategory(err error) ErrorCategory {
	if mse, ok := As(err); ok {
		return mse.Category
	}
	return CategoryInternal
}

// ValidationError creates a new validation error (invalid usage)
func ValidationError(message string) *MDStreamError {
	return New(CategoryValidation, SeverityWarning, message)
}
