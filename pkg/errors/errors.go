// Package errors provides structured error types for the CloudScope application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, TUI, and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes map onto the failure taxonomy of the graph engine:
//   - INGESTION_*: an inventory document is malformed or unreadable
//   - EDGE_REFERENCE_DROPPED: an edge pointed at a node id that does not exist
//   - UNKNOWN_TYPE: a node/edge type outside the known enumeration
//   - STATE_TRANSITION: an operation against an inconsistent session
//
// All of these are recoverable and local to the triggering operation; no code
// in this taxonomy is allowed to leave a session half-rebuilt.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeIngestion, "source %q: missing metadata", name)
//	if errors.Is(err, errors.ErrCodeIngestion) {
//	    // report and keep the previous graph
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Ingestion errors: a source document failed structural validation.
	ErrCodeIngestion       Code = "INGESTION_FAILED"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"

	// Graph build errors
	ErrCodeReferenceDropped Code = "EDGE_REFERENCE_DROPPED"
	ErrCodeUnknownType      Code = "UNKNOWN_TYPE"

	// Session errors
	ErrCodeStateTransition Code = "STATE_TRANSITION"
	ErrCodeSourceNotFound  Code = "SOURCE_NOT_FOUND"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Store errors
	ErrCodeStoreUnavailable Code = "STORE_UNAVAILABLE"

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

// Is reports whether err has the given error code.
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
