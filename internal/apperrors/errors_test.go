package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("bad date: %w", ErrValidation), http.StatusBadRequest},
		{"unbalanced", ErrUnbalanced, http.StatusBadRequest},
		{"not found", NewNotFoundError("book"), http.StatusNotFound},
		{"duplicate is conflict", ErrDuplicate, http.StatusConflict},
		{"invalid state", fmt.Errorf("entry 3: %w", ErrInvalidState), http.StatusConflict},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"app error code", NewAppError(http.StatusServiceUnavailable, "db down", errors.New("x")), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, "unbalanced", Kind(fmt.Errorf("post: %w", ErrUnbalanced)))
	assert.Equal(t, "conflict", Kind(ErrDuplicate))
	assert.Equal(t, "not_found", Kind(NewNotFoundError("account 7")))
	assert.Equal(t, "internal", Kind(errors.New("other")))
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewValidationFailedError("name is required")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "name is required: validation error", err.Error())
}
