// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid input series, parameters, thresholds
//   - Data/Resource errors (200-299): Observation store queries, imports and writes
//   - Indicator errors (300-399): Indicator registration and calculation errors
//   - Classifier errors (400-499): Signal classification and streaming errors
//   - Report errors (500-599): Table, Parquet and Excel report output
//   - Configuration errors (600-699): Config loading, validation and versioning
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidInput, "series is empty")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeInstrumentNotFound, "no observations for %s", key)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeInvalidInput) { ... }
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
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
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

// NewInvalidInputError reports a series that cannot be processed at all:
// empty, or with time values that are not strictly increasing.
func NewInvalidInputError(message string) *Error {
	return New(ErrCodeInvalidInput, message)
}

// NewInvalidInputErrorf is the formatted variant of NewInvalidInputError.
func NewInvalidInputErrorf(format string, args ...any) *Error {
	return Newf(ErrCodeInvalidInput, format, args...)
}

// IsInvalidInputError checks if an error carries ErrCodeInvalidInput.
func IsInvalidInputError(err error) bool {
	return HasCode(err, ErrCodeInvalidInput)
}

// InsufficientHistoryWarning is returned next to a complete result when the
// series is shorter than the history callers require before acting on a signal.
// It never replaces a result.
type InsufficientHistoryWarning struct {
	Required int    // Minimum rows required
	Actual   int    // Rows supplied
	Symbol   string // Optional: instrument context
	Message  string // Human-readable message
}

// NewInsufficientHistoryWarning creates a new InsufficientHistoryWarning.
func NewInsufficientHistoryWarning(required, actual int, symbol, message string) *InsufficientHistoryWarning {
	return &InsufficientHistoryWarning{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  message,
	}
}

// NewInsufficientHistoryWarningf creates a new InsufficientHistoryWarning with a formatted message.
func NewInsufficientHistoryWarningf(required, actual int, symbol, format string, args ...any) *InsufficientHistoryWarning {
	return &InsufficientHistoryWarning{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InsufficientHistoryWarning) Error() string {
	return e.Message
}

// IsInsufficientHistoryWarning checks if an error is an InsufficientHistoryWarning.
// It uses errors.As to check the error chain.
func IsInsufficientHistoryWarning(err error) bool {
	var warning *InsufficientHistoryWarning

	return errors.As(err, &warning)
}
