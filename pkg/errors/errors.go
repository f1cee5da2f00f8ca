package errors

import (
	"errors"
	"fmt"
)

// ErrorType defines different categories of errors
type ErrorType string

const (
	ErrorTypeValidation          ErrorType = "VALIDATION"
	ErrorTypeNotFound            ErrorType = "NOT_FOUND"
	ErrorTypeConstraintViolation ErrorType = "CONSTRAINT_VIOLATION"
	ErrorTypeTransactionConflict ErrorType = "TRANSACTION_CONFLICT"
	ErrorTypeUpstreamFailure     ErrorType = "UPSTREAM_FAILURE"
	ErrorTypeInconsistentRef     ErrorType = "INCONSISTENT_REFERENCE"
	ErrorTypeInternal            ErrorType = "INTERNAL"
)

// AppError is the custom error type for the application
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidation creates a validation error
func NewValidation(message string) error {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewNotFound creates a not found error
func NewNotFound(message string) error {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// NewConstraintViolation creates an error for deletions blocked by dependent records
func NewConstraintViolation(message string) error {
	return &AppError{Type: ErrorTypeConstraintViolation, Message: message}
}

// NewTransactionConflict creates an error for a rejected atomic write.
// The caller is expected to re-derive its plan against fresh state; nothing
// here retries.
func NewTransactionConflict(message string, err error) error {
	return &AppError{Type: ErrorTypeTransactionConflict, Message: message, Err: err}
}

// NewUpstreamFailure creates an error for a non-success response from a
// third-party collaborator (video platform, object storage)
func NewUpstreamFailure(message string, err error) error {
	return &AppError{Type: ErrorTypeUpstreamFailure, Message: message, Err: err}
}

// NewInconsistentReference creates an error for a reference-list removal
// that named an ID absent from the list
func NewInconsistentReference(message string) error {
	return &AppError{Type: ErrorTypeInconsistentRef, Message: message}
}

// NewInternal creates an internal error
func NewInternal(message string, err error) error {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// Wrap wraps an error with additional context, preserving its type
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Type:    appErr.Type,
			Message: fmt.Sprintf("%s: %s", message, appErr.Message),
			Err:     appErr.Err,
		}
	}

	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool { return isType(err, ErrorTypeValidation) }

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool { return isType(err, ErrorTypeNotFound) }

// IsConstraintViolation checks if an error is a blocked-deletion error
func IsConstraintViolation(err error) bool { return isType(err, ErrorTypeConstraintViolation) }

// IsTransactionConflict checks if an error is a rejected atomic write
func IsTransactionConflict(err error) bool { return isType(err, ErrorTypeTransactionConflict) }

// IsUpstreamFailure checks if an error came from a third-party collaborator
func IsUpstreamFailure(err error) bool { return isType(err, ErrorTypeUpstreamFailure) }

// IsInconsistentReference checks if an error is a stale reference removal
func IsInconsistentReference(err error) bool { return isType(err, ErrorTypeInconsistentRef) }

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool { return isType(err, ErrorTypeInternal) }
