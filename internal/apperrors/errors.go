package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates that the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates a missing, invalid or expired credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError carries an HTTP-facing status code and a user-safe message
// alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
	Fields  []FieldError
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError with an explicit status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError reports invalid input (400).
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewFieldValidationError reports invalid input with per-field details (400).
func NewFieldValidationError(message string, fields []FieldError) *AppError {
	e := NewValidationError(message)
	e.Fields = fields
	return e
}

// NewNotFoundError reports a missing resource (404).
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewForbiddenError reports an authorization denial (403).
func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

// NewConflictError reports a state conflict (409).
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrConflict)
}

// NewDuplicateError reports a unique-field collision (409).
func NewDuplicateError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrDuplicate)
}

// NewUnauthorizedError reports an authentication failure (401).
func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

// NewInternalServerError wraps an unexpected failure (500).
func NewInternalServerError(message string, err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return NewAppError(http.StatusInternalServerError, message, err)
}

// StatusCode resolves the HTTP status for any error produced by the application.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
