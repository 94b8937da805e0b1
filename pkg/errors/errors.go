// Package errors defines the coded errors galdraw reports to users.
//
// Every failure that reaches the CLI or the HTTP API carries a [Code]. Codes
// starting with INVALID_ mean the request itself was wrong and nothing was
// laid out. TOOL_UNAVAILABLE and COMPILE_FAILED come from the external
// LaTeX and image tools. The rest are internal.
//
//	if len(taps) != len(values) {
//	    return errors.New(errors.ErrCodeInvalidInput, "length mismatch (%d vs %d)", len(taps), len(values))
//	}
//
//	if errors.Is(err, errors.ErrCodeToolUnavailable) {
//	    // fall back to the native engine
//	}
//
// The package shadows the standard library's errors; import that one under
// another name when both are needed.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidEngine  Code = "INVALID_ENGINE"
	ErrCodeInvalidStyle   Code = "INVALID_STYLE"
	ErrCodeInvalidVizType Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	ErrCodeToolUnavailable Code = "TOOL_UNAVAILABLE"
	ErrCodeCompileFailed   Code = "COMPILE_FAILED"

	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Validation reports whether c rejects the caller's input.
func (c Code) Validation() bool { return strings.HasPrefix(string(c), "INVALID_") }

// Error pairs a [Code] with a message meant for the user and an optional
// underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with a printf-style message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with a cause, kept reachable through errors.Unwrap.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// outermost returns the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without code or cause, falling back to
// err.Error() for uncoded errors.
func UserMessage(err error) string {
	if e, ok := outermost(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err carries an INVALID_* code.
func IsValidation(err error) bool { return GetCode(err).Validation() }

// ToolError records a failed run of an external program. It is the cause
// of a COMPILE_FAILED error.
type ToolError struct {
	Tool   string // executable, e.g. "pdflatex"
	Stage  string // artifact being produced, e.g. "PDF"
	Stderr string
}

func (e *ToolError) Error() string {
	if e.Stderr == "" {
		return e.Tool + " failed"
	}
	return e.Tool + " failed: " + e.Stderr
}

// Code always returns [ErrCodeCompileFailed].
func (e *ToolError) Code() Code { return ErrCodeCompileFailed }
