package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Library store errors
	ErrCodeLibraryOpen       ErrorCode = "LIBRARY_OPEN"
	ErrCodeLibraryQuery      ErrorCode = "LIBRARY_QUERY"
	ErrCodeLibraryMutation   ErrorCode = "LIBRARY_MUTATION"
	ErrCodeCollectionExists  ErrorCode = "COLLECTION_EXISTS"
	ErrCodeCollectionMissing ErrorCode = "COLLECTION_MISSING"
	ErrCodeItemMissing       ErrorCode = "ITEM_MISSING"

	// Change feed errors
	ErrCodeFeedClosed ErrorCode = "FEED_CLOSED"
	ErrCodeFeedWatch  ErrorCode = "FEED_WATCH"

	// Picker session errors
	ErrCodeSessionClosed ErrorCode = "SESSION_CLOSED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// ShelfError represents a structured error with context
type ShelfError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *ShelfError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ShelfError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *ShelfError) WithDetail(key string, value interface{}) *ShelfError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *ShelfError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new ShelfError
func New(code ErrorCode, message string) *ShelfError {
	return &ShelfError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ShelfError
func Wrap(err error, code ErrorCode, message string) *ShelfError {
	return &ShelfError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific ShelfError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	shelfErr, ok := err.(*ShelfError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return shelfErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	shelfErr, ok := err.(*ShelfError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return shelfErr.Code
}
