// Package errs provides structured, user-friendly errors with machine-parseable codes.
package errs

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-parseable error identifier.
type ErrorCode string

const (
	// General
	ErrUnknown    ErrorCode = "ERR-000"
	ErrInternal   ErrorCode = "ERR-001"
	ErrConfig     ErrorCode = "ERR-002"
	ErrValidation ErrorCode = "ERR-003"

	// Retention spec errors
	ErrKeepSpec ErrorCode = "ERR-SPEC-001"

	// Archive listing errors
	ErrListingParse ErrorCode = "ERR-LIST-001"

	// Tarsnap errors
	ErrTarsnapExec   ErrorCode = "ERR-TARSNAP-001"
	ErrTarsnapList   ErrorCode = "ERR-TARSNAP-002"
	ErrTarsnapDelete ErrorCode = "ERR-TARSNAP-003"

	// State errors
	ErrStateRead  ErrorCode = "ERR-STATE-001"
	ErrStateWrite ErrorCode = "ERR-STATE-002"

	// QA harness errors
	ErrCheckFailed ErrorCode = "ERR-QA-001"
)

// Error is the standard structured error type used across all packages.
type Error struct {
	Code     ErrorCode // Machine-parseable error code
	Op       string    // Operation chain, e.g., "prune.plan.parse"
	Resource string    // Resource identifier (archive name, spec atom, etc.)
	Cause    error     // Wrapped upstream error
	Advice   string    // Human-readable remediation hint
}

func (e *Error) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("[%s] %s (%s): %v", e.Code, e.Op, e.Resource, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Op, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage returns the formatted user-facing error message with remediation advice.
func (e *Error) UserMessage() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Op)
	if e.Resource != "" {
		msg += fmt.Sprintf(" (resource: %s)", e.Resource)
	}
	if e.Advice != "" {
		msg += fmt.Sprintf("\n  → %s", e.Advice)
	}
	return msg
}

// New creates a new Error.
func New(code ErrorCode, op string, cause error) *Error {
	return &Error{Code: code, Op: op, Cause: cause}
}

// Newf creates a new Error with a formatted message as the cause.
func Newf(code ErrorCode, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Cause: fmt.Errorf(format, args...)}
}

// WithResource sets the resource identifier on an Error.
func (e *Error) WithResource(res string) *Error {
	e.Resource = res
	return e
}

// WithAdvice sets the human-readable remediation hint on an Error.
func (e *Error) WithAdvice(advice string) *Error {
	e.Advice = advice
	return e
}

// Wrap wraps an existing error as an Error at a new operation boundary.
func Wrap(err error, code ErrorCode, op string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Op: op, Cause: err}
}

// IsCode reports whether err is an Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
