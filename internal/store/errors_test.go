package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrTaskNotFound", err: ErrTaskNotFound, expected: true},
		{name: "wrapped ErrUserNotFound", err: fmt.Errorf("lookup: %w", ErrUserNotFound), expected: true},
		{name: "StoreError wrapping ErrTaskNotFound", err: NewStoreError("task", "get", "missing", ErrTaskNotFound), expected: true},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("create: %w", ErrDuplicate)))
	assert.False(t, IsDuplicateError(ErrTaskNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("disk full")

	err := NewStoreError("task", "create", "insert failed", cause)
	assert.Equal(t, "create operation on task failed: insert failed: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("user", "get", "no rows", nil)
	assert.Equal(t, "get operation on user failed: no rows", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
