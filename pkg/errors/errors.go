// Package errors provides structured error types for famlayout.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP server and the library
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures, including an unknown layout root
//   - *_NOT_FOUND: Missing people, families or files
//   - UNRELATED_ASSIGNMENT: A relationship between people of different graphs
//   - ALGORITHM_INVARIANT: An impossible internal state in the layout engine
//   - INTERNAL_*: Unexpected internal errors
//
// ALGORITHM_INVARIANT is never returned. The layout engine panics with an
// *Error carrying that code, because continuing would silently break the
// determinism of the result.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRoot, "root %q is not a member", id)
//	if errors.Is(err, errors.ErrCodeInvalidRoot) {
//	    // Ask the caller for another root
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidRoot   Code = "INVALID_ROOT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Relationship errors
	ErrCodeUnrelatedAssignment Code = "UNRELATED_ASSIGNMENT"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodePersonNotFound Code = "PERSON_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeAlgorithmInvariant Code = "ALGORITHM_INVARIANT"
	ErrCodeInternal           Code = "INTERNAL_ERROR"
	ErrCodeUnsupported        Code = "UNSUPPORTED"
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

// HTTPStatus maps an error code to the status the HTTP server responds with.
// Unknown codes map to 500.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidRoot,
		ErrCodeInvalidPath, ErrCodeUnrelatedAssignment:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodePersonNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// Invariant panics with an ALGORITHM_INVARIANT error. Use it only for states
// that correct code cannot reach.
func Invariant(format string, args ...any) {
	panic(New(ErrCodeAlgorithmInvariant, format, args...))
}

// FromPanic converts a recovered value into an *Error. Invariant panics keep
// their code; anything else becomes INTERNAL_ERROR. A nil value returns nil.
func FromPanic(rec any) *Error {
	if rec == nil {
		return nil
	}
	err, ok := rec.(error)
	if !ok {
		err = fmt.Errorf("%v", rec)
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(ErrCodeInternal, err, "panic")
}
