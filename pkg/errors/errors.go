// Package errors provides coded error types with context and diagnostic
// metadata for bytekit. Transformations return these errors for semantically
// invalid input; the CLI renders them with suggestions, context and, in debug
// mode, a lightweight stack trace.
package errors

import (
	stdErrors "errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorCode categorizes errors for handling
type ErrorCode string

const (
	// Input errors
	ErrInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrInvalidHex      ErrorCode = "INVALID_HEX"
	ErrInvalidEncoding ErrorCode = "INVALID_ENCODING"
	ErrInvalidNumber   ErrorCode = "INVALID_NUMBER"
	ErrInvalidLength   ErrorCode = "INVALID_LENGTH"

	// Capability errors
	ErrUnsupported ErrorCode = "UNSUPPORTED"

	// Cryptographic errors
	ErrInvalidKey   ErrorCode = "INVALID_KEY"
	ErrVerifyFailed ErrorCode = "VERIFY_FAILED"

	// Configuration errors
	ErrInvalidConfig ErrorCode = "INVALID_CONFIG"

	// Unknown errors
	ErrUnknown ErrorCode = "UNKNOWN"
)

// StackFrame represents a single stack frame
type StackFrame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// Error is the base error type with rich context
type Error struct {
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Details    string            `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	Cause      error             `json:"-"`
	Context    map[string]string `json:"context,omitempty"`
	Stack      []StackFrame      `json:"stack,omitempty"`
}

// Error implements the error interface. The result is a single line:
// details and context are rendered separately by the CLI.
func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// Unwrap returns the wrapped cause
func (e *Error) Unwrap() error { return e.Cause }

// WithSuggestion adds a suggestion for fixing the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// WithContext adds contextual information
func (e *Error) WithContext(key, value string) *Error {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithCause wraps another error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetails adds detailed information
func (e *Error) WithDetails(details string) *Error {
	e.Details = details
	return e
}

// New creates a new Error
func New(code ErrorCode, message string) *Error {
	err := &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]string),
	}
	err.captureStack()
	err.Suggestion = getDefaultSuggestion(code)
	return err
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	err := New(code, fmt.Sprintf(format, args...))
	// re-capture so the first frame is the caller of Newf
	err.Stack = nil
	err.captureStack()
	return err
}

// Wrap wraps a standard error with Error
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	var kitErr *Error
	if stdErrors.As(err, &kitErr) {
		if message != "" {
			kitErr.Message = message + ": " + kitErr.Message
		}
		return kitErr
	}
	return New(code, message).WithCause(err)
}

// CodeOf returns the code of the first Error in err's chain, or ErrUnknown.
func CodeOf(err error) ErrorCode {
	var kitErr *Error
	if stdErrors.As(err, &kitErr) {
		return kitErr.Code
	}
	return ErrUnknown
}

// As reports whether err's chain holds an Error and returns it.
func As(err error) (*Error, bool) {
	var kitErr *Error
	ok := stdErrors.As(err, &kitErr)
	return kitErr, ok
}

// captureStack captures the current stack trace
func (e *Error) captureStack() {
	const maxFrames = 10
	pc := make([]uintptr, maxFrames)
	n := runtime.Callers(3, pc) // Skip runtime.Callers, captureStack, New/Wrap
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.File, "runtime/") || strings.Contains(frame.File, "testing/") {
			if !more {
				break
			}
			continue
		}
		e.Stack = append(e.Stack, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
}

// getDefaultSuggestion provides default fix suggestions
func getDefaultSuggestion(code ErrorCode) string {
	suggestions := map[ErrorCode]string{
		ErrInvalidHex:      "Hex input takes an optional 0x prefix and an even number of digits",
		ErrInvalidEncoding: "Check the input alphabet and padding",
		ErrInvalidNumber:   "Numbers accept 0x, 0o and 0b prefixes",
		ErrInvalidLength:   "Check the byte length required by the command",
		ErrUnsupported:     "Run 'bytekit <command> --help' to list accepted values",
		ErrInvalidKey:      "Keys are hex encoded; check the curve or key size",
		ErrInvalidConfig:   "Fix the config file or point BYTEKIT_CONFIG elsewhere",
	}
	if s, ok := suggestions[code]; ok {
		return s
	}
	return "Run 'bytekit usage' for worked examples"
}
