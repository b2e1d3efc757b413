package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrGateway      = errors.New("gateway failure")
	ErrRateLimited  = errors.New("rate limited")
)

// Error codes
const (
	CodeValidation  = "validation"
	CodeGateway     = "gateway"
	CodeNotFound    = "not_found"
	CodeRateLimited = "rate_limited"
)

// Error carries a user-facing message alongside the underlying cause.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new error with a message
func New(message string) error {
	return &Error{
		Message: message,
	}
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation reports a local rule violation detected before any network call.
func Validation(message string) error {
	return &Error{Code: CodeValidation, Message: message, Err: ErrInvalidInput}
}

// Gateway reports a failed remote call. message should already be the text
// to show the user.
func Gateway(message string, cause error) error {
	err := ErrGateway
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrGateway, cause)
	}
	return &Error{Code: CodeGateway, Message: message, Err: err}
}

// NotFound reports a missing resource.
func NotFound(message string) error {
	return &Error{Code: CodeNotFound, Message: message, Err: ErrNotFound}
}

// RateLimited reports a request refused by a local limiter.
func RateLimited(message string) error {
	return &Error{Code: CodeRateLimited, Message: message, Err: ErrRateLimited}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps all the given errors
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetMessage returns the error message
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsValidation returns true if the error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsGateway returns true if the error came from a failed remote call
func IsGateway(err error) bool {
	return errors.Is(err, ErrGateway)
}
