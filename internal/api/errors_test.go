package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    error
		status int
	}{
		{auth.ErrExpiredToken, http.StatusUnauthorized},
		{auth.ErrInvalidToken, http.StatusUnauthorized},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrTaskNotFound, http.StatusNotFound},
		{fmt.Errorf("get: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{service.ErrEmailExists, http.StatusConflict},
		{domain.ErrTitleRequired, http.StatusBadRequest},
		{domain.ErrInvalidSortField, http.StatusBadRequest},
		{domain.ErrPasswordTooShort, http.StatusBadRequest},
		{store.ErrInvalidEntity, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, MapErrorToStatusCode(tt.err), tt.err.Error())
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Task not found", GetSafeErrorMessage(service.ErrTaskNotFound))
	assert.Equal(t, "Title is required", GetSafeErrorMessage(domain.ErrTitleRequired))
	assert.Equal(t, "Title cannot be empty", GetSafeErrorMessage(domain.ErrEmptyTitle))
	assert.Equal(t, "Token expired", GetSafeErrorMessage(auth.ErrExpiredToken))
	assert.Equal(t, "Password must be at least 8 characters long", GetSafeErrorMessage(domain.ErrPasswordTooShort))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))

	leaky := errors.New("pq: connection to postgres://admin:hunter2@db failed")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(leaky))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
