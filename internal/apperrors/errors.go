package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
// Resources owned by another user are reported the same way.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the request conflicts with existing state,
// e.g. a duplicate code or deleting something that is still referenced.
var ErrConflict = errors.New("conflict")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = fmt.Errorf("resource already exists: %w", ErrConflict)

// ErrUnbalanced indicates that the debits and credits of a journal entry differ.
var ErrUnbalanced = errors.New("total debits and credits must be equal")

// ErrInvalidState indicates an illegal journal entry status transition.
var ErrInvalidState = errors.New("invalid state transition")

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// AppError carries an HTTP-ish status code and a caller-facing message
// alongside the underlying error.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error that matches ErrNotFound.
func NewNotFoundError(resource string) error {
	return NewAppError(http.StatusNotFound, resource+" not found", ErrNotFound)
}

// NewConflictError returns an error that matches ErrConflict.
func NewConflictError(message string) error {
	return NewAppError(http.StatusConflict, message, ErrConflict)
}

// NewValidationFailedError returns an error that matches ErrValidation.
func NewValidationFailedError(message string) error {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// HTTPStatus maps an error to the HTTP status code used by the API.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUnbalanced):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidState):
		return http.StatusConflict
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// Kind returns a short machine-readable name for the error's category.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "invalid_argument"
	case errors.Is(err, ErrUnbalanced):
		return "unbalanced"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	}
	return "internal"
}
