// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types for hioload-mem. The router itself reports failure
// only through nil return values; these errors are for allocator
// implementations and construction-time validation.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrOutOfMemory     = fmt.Errorf("out of memory")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrNotSupported    = fmt.Errorf("operation not supported")
	ErrPoolAbsent      = fmt.Errorf("memory pool absent on this platform")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeOutOfMemory
	ErrCodeInvalidArgument
	ErrCodeNotSupported
	ErrCodePoolAbsent
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
