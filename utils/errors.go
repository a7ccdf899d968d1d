package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds carried by AppError. The string values are stable identifiers
// used for client-facing error mapping.
const (
	ErrKindNotFound   = "NOT_FOUND"
	ErrKindValidation = "VALIDATION"
	ErrKindConflict   = "CONFLICT"
	ErrKindUpstream   = "UPSTREAM"
	ErrKindInternal   = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Kind    string `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(kind string, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFoundError creates a NOT_FOUND error
func NotFoundError(message string) *AppError {
	return NewAppError(ErrKindNotFound, http.StatusNotFound, message, nil)
}

// ValidationErr creates a VALIDATION error
func ValidationErr(message string) *AppError {
	return NewAppError(ErrKindValidation, http.StatusUnprocessableEntity, message, nil)
}

// ConflictError creates a CONFLICT error
func ConflictError(message string, err error) *AppError {
	return NewAppError(ErrKindConflict, http.StatusConflict, message, err)
}

// UpstreamError creates an UPSTREAM error wrapping the provider-side cause
func UpstreamError(message string, err error) *AppError {
	return NewAppError(ErrKindUpstream, http.StatusBadGateway, message, err)
}

// InternalError creates an INTERNAL error
func InternalError(message string, err error) *AppError {
	return NewAppError(ErrKindInternal, http.StatusInternalServerError, message, err)
}

// GetAppError returns the AppError if the error is (or wraps) an AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind string) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	return IsKind(err, ErrKindNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return IsKind(err, ErrKindValidation)
}

// IsConflictError checks if an error is a conflict error
func IsConflictError(err error) bool {
	return IsKind(err, ErrKindConflict)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
