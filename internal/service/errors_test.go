package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestNewTaskServiceError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewTaskServiceError("op", "msg", nil))

	assert.Same(t, ErrTaskNotFound, NewTaskServiceError("get_task", "msg", store.ErrTaskNotFound))
	assert.Same(t, ErrTaskNotFound, NewTaskServiceError("get_task", "msg", fmt.Errorf("wrapped: %w", store.ErrTaskNotFound)))

	validation := NewTaskServiceError("update_task", "msg", domain.ErrEmptyTitle)
	assert.Same(t, domain.ErrEmptyTitle, validation)

	cause := errors.New("disk full")
	err := NewTaskServiceError("create_task", "failed to save task", cause)
	var svcErr *TaskServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "create_task", svcErr.Operation)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "task service create_task failed: failed to save task: disk full", err.Error())
	assert.Equal(t, "task service create_service failed: db cannot be nil",
		(&TaskServiceError{Operation: "create_service", Message: "db cannot be nil"}).Error())
}
