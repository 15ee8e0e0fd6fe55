// Package errors provides structured error types for reqcheck.
//
// Error codes give the CLI a machine-readable handle on failure categories
// so it can map them to exit codes and colored output without string matching.
//
// # Error Codes
//
// Codes group by failure category:
//   - INVALID_VERSION, UNPINNED_DEPENDENCY: input validation failures
//   - FILE_NOT_FOUND, PACKAGE_NOT_FOUND: a resource is missing
//   - NETWORK_ERROR: transport-level failures talking to the package index
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidVersion, "python argument invalid: %s", arg)
//	if errors.Is(err, errors.ErrCodeInvalidVersion) {
//	    // usage error, exit 2
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetching %s", pkg)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure categories reqcheck distinguishes.
const (
	// Input validation errors
	ErrCodeInvalidVersion Code = "INVALID_VERSION"
	ErrCodeUnpinned       Code = "UNPINNED_DEPENDENCY"

	// Resource not found errors
	ErrCodePackageNotFound Code = "PACKAGE_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// Compatibility verdicts surfaced as errors in strict mode
	ErrCodeIncompatible Code = "INCOMPATIBLE"
	ErrCodeUnspecified  Code = "SUPPORT_UNSPECIFIED"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
