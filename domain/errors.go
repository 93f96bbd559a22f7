package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across layers. The
// codes split failures the way the UI needs to react to them: what the user
// can fix (credentials, validation, activation) versus what they cannot
// (network, server).
type ErrorCode string

const (
	ErrCodeUnauthenticated    ErrorCode = "UNAUTHENTICATED"
	ErrCodeNotActivated       ErrorCode = "NOT_ACTIVATED"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeValidation         ErrorCode = "VALIDATION"
	ErrCodeRejected           ErrorCode = "REJECTED"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeNetwork            ErrorCode = "NETWORK"
	ErrCodeServer             ErrorCode = "SERVER"
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
	ErrUnauthenticated    = NewError(ErrCodeUnauthenticated, "not logged in")
	ErrNotActivated       = NewError(ErrCodeNotActivated, "account is not activated")
	ErrInvalidCredentials = NewError(ErrCodeInvalidCredentials, "invalid credentials")
	ErrTaskNotFound       = NewError(ErrCodeNotFound, "task not found")
	ErrNoSession          = NewError(ErrCodeUnauthenticated, "no stored session")
	ErrNoEdit             = NewError(ErrCodeValidation, "no task under edit")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
