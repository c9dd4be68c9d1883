// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid trades, backtests, filters and configuration
//   - Data/Resource errors (200-299): Missing backtests or trades, query failures, undo history
//   - Import/export errors (300-399): CSV and parquet transfer failures
//   - Store errors (400-499): Journal store lifecycle and schema version errors
//   - Report errors (500-599): Report generation and output failures
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidTrade, "risk must be positive")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeBacktestNotFound, "backtest %s not found", id)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to load trades", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeBacktestNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// FieldError describes a single rejected field of a journal record, such as a
// trade row coming from a CSV import.
type FieldError struct {
	Record  string // Record identifier, e.g. trade id or CSV row number
	Field   string // Name of the rejected field
	Value   any    // Offending value
	Message string // Human-readable message
}

// NewFieldError creates a new FieldError.
func NewFieldError(record, field string, value any, message string) *FieldError {
	return &FieldError{
		Record:  record,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewFieldErrorf creates a new FieldError with a formatted message.
func NewFieldErrorf(record, field string, value any, format string, args ...any) *FieldError {
	return &FieldError{
		Record:  record,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	return fmt.Sprintf("%s.%s: %s", e.Record, e.Field, e.Message)
}

// IsFieldError checks if an error is a FieldError.
// It uses errors.As to check the error chain.
func IsFieldError(err error) bool {
	var fieldErr *FieldError

	return errors.As(err, &fieldErr)
}
