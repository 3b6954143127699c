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
	ErrInvalidState ErrorCode = "INVALID_STATE"

	// Run setup errors
	ErrInputCreated      ErrorCode = "INPUT_CREATED"
	ErrNoProjects        ErrorCode = "NO_PROJECTS"
	ErrNoProjectsScanned ErrorCode = "NO_PROJECTS_SCANNED"
	ErrLocked            ErrorCode = "LOCKED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Ignore file errors
	ErrIgnoreLoad ErrorCode = "IGNORE_LOAD"

	// Project errors
	ErrProjectScan  ErrorCode = "PROJECT_SCAN"
	ErrProjectPanic ErrorCode = "PROJECT_PANIC"

	// FileSystem errors
	ErrDirRead    ErrorCode = "DIR_READ"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileCreate ErrorCode = "FILE_CREATE"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
)

// ScanError represents a structured error with code and details
type ScanError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ScanError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ScanError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ScanError) Is(target error) bool {
	var targetErr *ScanError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ScanError with the given code and message
func New(code ErrorCode, message string) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ScanError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ScanError {
	return &ScanError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ScanError
func Wrap(err error, code ErrorCode, message string) *ScanError {
	if err == nil {
		return nil
	}
	return &ScanError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ScanError {
	if err == nil {
		return nil
	}
	return &ScanError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ScanError) WithDetail(key string, value interface{}) *ScanError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ScanError
func GetErrorCode(err error) ErrorCode {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ScanError
func GetErrorDetails(err error) map[string]interface{} {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Details
	}
	return nil
}
