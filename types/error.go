package types

import "fmt"

// ErrorCode represents a unified error code across the console core.
type ErrorCode string

// Workflow definition error codes
const (
	ErrDanglingReference ErrorCode = "DANGLING_REFERENCE"
	ErrDuplicateStepID   ErrorCode = "DUPLICATE_STEP_ID"
	ErrUnknownStepType   ErrorCode = "UNKNOWN_STEP_TYPE"
	ErrInvalidDefinition ErrorCode = "INVALID_DEFINITION"
	ErrMissingStart      ErrorCode = "MISSING_START"
)

// Graph error codes
const (
	ErrNodeNotFound  ErrorCode = "NODE_NOT_FOUND"
	ErrEdgeConflict  ErrorCode = "EDGE_CONFLICT"
	ErrInvalidLayout ErrorCode = "INVALID_LAYOUT"
)

// Error represents a structured error with code, message, and metadata.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	StepID  string    `json:"step_id,omitempty"`
	Target  string    `json:"target,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StepID != "" {
		return fmt.Sprintf("[%s] %s (step %s)", e.Code, e.Message, e.StepID)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithStep records the step the error originates from.
func (e *Error) WithStep(stepID string) *Error {
	e.StepID = stepID
	return e
}

// WithTarget records the referenced id that triggered the error.
func (e *Error) WithTarget(target string) *Error {
	e.Target = target
	return e
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}
