package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"

	// Template pipeline errors
	ErrCompile  ErrorCode = "COMPILE"
	ErrSnapshot ErrorCode = "SNAPSHOT"
	ErrExport   ErrorCode = "EXPORT"
	ErrSend     ErrorCode = "SEND"
	ErrDialog   ErrorCode = "DIALOG"

	// Persistence errors
	ErrPersistRead   ErrorCode = "PERSIST_READ"
	ErrPersistWrite  ErrorCode = "PERSIST_WRITE"
	ErrPersistDelete ErrorCode = "PERSIST_DELETE"
)

// StudioError represents a structured error with code and details
type StudioError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *StudioError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *StudioError) Unwrap() error {
	return e.Wrapped
}

// Is matches any StudioError carrying the same code
func (e *StudioError) Is(target error) bool {
	var targetErr *StudioError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new StudioError with the given code and message
func New(code ErrorCode, message string) *StudioError {
	return &StudioError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new StudioError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *StudioError {
	return &StudioError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a StudioError
func Wrap(err error, code ErrorCode, message string) *StudioError {
	if err == nil {
		return nil
	}
	return &StudioError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *StudioError {
	if err == nil {
		return nil
	}
	return &StudioError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *StudioError) WithDetail(key string, value interface{}) *StudioError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var studioErr *StudioError
	if errors.As(err, &studioErr) {
		return studioErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a StudioError
func GetErrorCode(err error) ErrorCode {
	var studioErr *StudioError
	if errors.As(err, &studioErr) {
		return studioErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a StudioError
func GetErrorDetails(err error) map[string]interface{} {
	var studioErr *StudioError
	if errors.As(err, &studioErr) {
		return studioErr.Details
	}
	return nil
}
