package apperr

import (
	"errors"
	"fmt"
)

// Code identifies a failure kind that is stable across releases.
type Code string

const (
	// Validation
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeWeakPassword Code = "WEAK_PASSWORD"

	// Credentials
	CodeDuplicateEmail Code = "DUPLICATE_EMAIL"
	CodeBadCredentials Code = "BAD_CREDENTIALS"
	CodeUserNotFound   Code = "USER_NOT_FOUND"

	// Tokens
	CodeMissingToken   Code = "MISSING_TOKEN"
	CodeTokenMalformed Code = "TOKEN_MALFORMED"
	CodeTokenExpired   Code = "TOKEN_EXPIRED"
	CodeTokenInvalid   Code = "TOKEN_INVALID"
	CodeUnknownUser    Code = "UNKNOWN_USER"

	// Resource
	CodeNotFound Code = "NOT_FOUND"

	// Rate limiting
	CodeRateLimited Code = "RATE_LIMITED"

	// Infrastructure
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
	CodeInternal         Code = "INTERNAL_ERROR"
)

// Error is a structured error that can be returned to clients.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Common constructors

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

func WeakPassword() *Error {
	return New(CodeWeakPassword, "Password must be at least 6 characters long")
}

func DuplicateEmail() *Error {
	return New(CodeDuplicateEmail, "User already exists with this email")
}

func BadCredentials() *Error {
	return New(CodeBadCredentials, "Invalid email or password")
}

func UserNotFound() *Error {
	return New(CodeUserNotFound, "Invalid email or password")
}

func MissingToken() *Error {
	return New(CodeMissingToken, "No token provided")
}

func TokenMalformed() *Error {
	return New(CodeTokenMalformed, "Malformed token")
}

func TokenExpired() *Error {
	return New(CodeTokenExpired, "Token expired, please log in again")
}

func TokenInvalid() *Error {
	return New(CodeTokenInvalid, "Invalid token")
}

func UnknownUser() *Error {
	return New(CodeUnknownUser, "User not found")
}

func NotFound(resource string) *Error {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func RateLimited() *Error {
	return New(CodeRateLimited, "Too many requests, slow down")
}

func StoreUnavailable(cause error) *Error {
	return Wrap(CodeStoreUnavailable, "Storage unavailable", cause)
}

func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// As converts an error to *Error if possible.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetCode returns the error's code, or CodeInternal for unclassified errors.
func GetCode(err error) Code {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}
