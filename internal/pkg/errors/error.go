package xerrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common reusable application errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("unauthorized access")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidPhone  = errors.New("invalid phone number")
	ErrConflict      = errors.New("conflict: resource already exists")
	ErrInternal      = errors.New("internal server error")
	ErrRateLimited   = errors.New("too many requests")
	ErrPersistence   = errors.New("persistence failure")
	ErrBadTransition = errors.New("status transition not allowed")
)

// Kind classifies an AppError for transport mapping.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindPhoneFormat Kind = "phone_format"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindPersistence Kind = "persistence"
)

// AppError carries a user-facing message, the HTTP status it maps to and,
// for validation failures, the offending field names.
type AppError struct {
	Kind    Kind
	Status  int
	Message string
	Fields  []string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation reports missing or malformed request fields.
func Validation(fields []string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: "missing required fields: " + strings.Join(fields, ", "),
		Fields:  fields,
		Err:     ErrInvalidInput,
	}
}

// InvalidInput reports a bad request that is not a missing field.
func InvalidInput(message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: message,
		Err:     ErrInvalidInput,
	}
}

func PhoneFormat(message string) *AppError {
	return &AppError{
		Kind:    KindPhoneFormat,
		Status:  http.StatusBadRequest,
		Message: message,
		Err:     ErrInvalidPhone,
	}
}

func NotFound(message string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Status:  http.StatusNotFound,
		Message: message,
		Err:     ErrNotFound,
	}
}

// Conflict is used for rejected status transitions.
func Conflict(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Status:  http.StatusConflict,
		Message: message,
		Err:     ErrBadTransition,
	}
}

// Persistence wraps a storage failure. The cause is kept for logging only.
func Persistence(message string, cause error) *AppError {
	if cause == nil {
		cause = ErrPersistence
	} else {
		cause = fmt.Errorf("%w: %w", ErrPersistence, cause)
	}
	return &AppError{
		Kind:    KindPersistence,
		Status:  http.StatusInternalServerError,
		Message: message,
		Err:     cause,
	}
}

// As returns the AppError in err's chain, if any.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusOf maps err to an HTTP status code.
func StatusOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Status
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidPhone):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict), errors.Is(err, ErrBadTransition):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
