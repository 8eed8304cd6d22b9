package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across presentation layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrAccountNotFound     = NewError(ErrCodeNotFound, "account not found")
	ErrTaskNotFound        = NewError(ErrCodeNotFound, "task not found")
	ErrUnauthorized        = NewError(ErrCodeUnauthorized, "not logged in")
	ErrInvalidCredentials  = NewError(ErrCodeUnauthorized, "Invalid username or password.")
	ErrCredentialsRequired = NewError(ErrCodeInvalid, "Username and password are required.")
	ErrTaskFieldsRequired  = NewError(ErrCodeInvalid, "Title and deadline are required.")
	ErrInvalidDeadline     = NewError(ErrCodeInvalid, "Deadline must be a date in YYYY-MM-DD format.")
	ErrDuplicateUsername   = NewError(ErrCodeConflict, "Username already exists.")
	ErrDuplicateTitle      = NewError(ErrCodeConflict, "A task with this title already exists, choose another.")
	ErrInvalidPayload      = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// CodeOf returns the classification of err, INTERNAL for anything unclassified.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}
