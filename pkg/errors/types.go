// Package errors provides typed errors for the hop project.
//
// This package defines the error types that carry structured information for
// the two failure classes hop surfaces to users: configuration problems and
// unusable scan roots. Everything else (unreadable directories, failed
// classification, unresolved tokens) is deliberately absorbed by the
// components that encounter it. All error types implement the standard error
// interface and support errors.Is() and errors.As() from the standard library
// and cockroachdb/errors.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Field   string // Which config field has the issue
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
	}
	return "config error: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with an underlying cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// RootError reports a scan root that cannot be used: it does not exist, is
// not a directory, or cannot be made absolute.
type RootError struct {
	Root    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RootError) Error() string {
	if e.Root != "" {
		return fmt.Sprintf("invalid root %q: %s", e.Root, e.Message)
	}
	return "invalid root: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *RootError) Unwrap() error {
	return e.Cause
}

// NewRootError creates a new RootError.
func NewRootError(root, message string) *RootError {
	return &RootError{Root: root, Message: message}
}

// NewRootErrorWithCause creates a new RootError with an underlying cause.
func NewRootErrorWithCause(root, message string, cause error) *RootError {
	return &RootError{Root: root, Message: message, Cause: cause}
}

// IsConfigError checks if an error or any error in its chain is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsRootError checks if an error or any error in its chain is a RootError.
func IsRootError(err error) bool {
	var rootErr *RootError
	return errors.As(err, &rootErr)
}

// Re-export commonly used functions from cockroachdb/errors for convenience.
// This allows consumers to use hoperrors.Wrap() instead of importing two packages.
var (
	// New creates a new error with the given message.
	New = errors.New

	// Newf creates a new error with formatted message.
	Newf = errors.Newf

	// Wrap wraps an error with additional context.
	Wrap = errors.Wrap

	// Wrapf wraps an error with formatted additional context.
	Wrapf = errors.Wrapf

	// Is reports whether any error in err's chain matches target.
	Is = errors.Is

	// As finds the first error in err's chain that matches target.
	As = errors.As

	// Cause returns the root cause of an error.
	Cause = errors.Cause
)
