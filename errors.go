package treesearch

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the category of a treesearch error.
type ErrorCode int

const (
	// ErrInvalidJSON indicates the input JSON could not be parsed.
	ErrInvalidJSON ErrorCode = iota + 1
	// ErrInvalidInput indicates a value that cannot be represented, such as
	// a NaN number or malformed number text.
	ErrInvalidInput
)

// String returns a short name for the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrInvalidJSON:
		return "invalid JSON"
	case ErrInvalidInput:
		return "invalid input"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// Error is the structured error type returned by the codec and the
// document helpers. Search itself never fails.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode
	// Message is a human-readable description.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("treesearch: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("treesearch: %s", e.Message)
}

// Unwrap returns the underlying cause, supporting errors.Is and errors.As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsJSONError returns true if err is a JSON parsing error.
func IsJSONError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrInvalidJSON
	}
	return false
}

// IsInputError returns true if err reports a value that cannot be encoded
// or parsed as a number.
func IsInputError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrInvalidInput
	}
	return false
}
