// Package errors provides structured error types for geomech.
//
// Every calculation, tool dispatch and transport path reports failures as an
// *Error carrying a machine-readable Code, so the CLI and HTTP API can map
// them to exit codes and status codes without string matching.
//
// # Error Codes
//
//   - INSUFFICIENT_INPUT: fewer independent parameters than a model needs
//   - SHAPE_MISMATCH: paired array inputs of unequal length
//   - DOMAIN_ERROR: a derived quantity left its physical bounds and could not be clamped
//   - INVALID_INPUT: malformed request or a value outside its allowed range
//   - UNKNOWN_TOOL: no tool is registered under the requested name
//   - NOT_FOUND / INTERNAL_ERROR: archive lookups and unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInsufficientInput, "need 2 moduli, got %d", n)
//	if errors.Is(err, errors.ErrCodeInsufficientInput) {
//	    // report to caller
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidInput, jsonErr, "decode %s", tool)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Calculation errors
	ErrCodeInsufficientInput Code = "INSUFFICIENT_INPUT"
	ErrCodeShapeMismatch     Code = "SHAPE_MISMATCH"
	ErrCodeDomain            Code = "DOMAIN_ERROR"

	// Request errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeUnknownTool  Code = "UNKNOWN_TOOL"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

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

// As is errors.As from the standard library, so callers importing this
// package under the name errors keep access to it.
func As(err error, target any) bool {
	return errors.As(err, target)
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

// IsInputError reports whether err was caused by the caller's input rather
// than by the service. Transports use it to choose between client and server
// error responses.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInsufficientInput, ErrCodeShapeMismatch, ErrCodeDomain, ErrCodeInvalidInput:
		return true
	}
	return false
}
