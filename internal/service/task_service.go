package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/events"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/store"
)

// CreateTaskParams carries the caller-supplied fields of a new task.
// Nil and empty Priority both mean the default priority; nil and empty
// DueDate both mean no due date.
type CreateTaskParams struct {
	Title       string
	Description string
	Priority    *string
	DueDate     *string
}

// TaskService provides the task operations of a single authenticated user.
// Every method is scoped to userID; tasks owned by anyone else behave as if
// they did not exist.
type TaskService interface {
	// List returns the user's tasks filtered and ordered by q.
	// The result is never nil.
	List(ctx context.Context, userID uuid.UUID, q domain.TaskQuery) ([]*domain.Task, error)

	// Create validates params and stores a new task for the user.
	Create(ctx context.Context, userID uuid.UUID, params CreateTaskParams) (*domain.Task, error)

	// Get returns a single task or ErrTaskNotFound.
	Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// Update applies patch to the task in one transaction and returns the result.
	Update(ctx context.Context, userID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Delete permanently removes the task.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error

	// Stats summarizes the user's tasks.
	Stats(ctx context.Context, userID uuid.UUID) (*domain.TaskStats, error)
}

type taskServiceImpl struct {
	taskStore store.TaskStore
	db        *sql.DB
	emitter   events.EventEmitter
	logger    *slog.Logger
	now       func() time.Time
}

// NewTaskService creates a TaskService. Writes run in transactions on db and
// lifecycle events go to emitter once they commit.
func NewTaskService(
	taskStore store.TaskStore,
	db *sql.DB,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "taskStore cannot be nil"}
	}
	if db == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if emitter == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "emitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		db:        db,
		emitter:   emitter,
		logger:    logger.With("component", "task_service"),
		now:       time.Now,
	}, nil
}

func (s *taskServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	q domain.TaskQuery,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskStore.List(ctx, userID, q)
	if err != nil {
		log.Error("failed to list tasks",
			"error", redact.Error(err),
			"user_id", userID)
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

func (s *taskServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	params CreateTaskParams,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if params.Title == "" {
		return nil, domain.ErrTitleRequired
	}

	var priority domain.Priority
	if params.Priority != nil {
		p, err := domain.ParsePriority(*params.Priority)
		if err != nil {
			return nil, err
		}
		priority = p
	}

	var dueDate *time.Time
	if params.DueDate != nil && *params.DueDate != "" {
		due, err := domain.ParseDueDate(*params.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = &due
	}

	task, err := domain.NewTask(userID, params.Title, params.Description, priority, dueDate)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		log.Error("failed to create task",
			"error", redact.Error(err),
			"user_id", userID)
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		"task_id", task.ID,
		"user_id", userID)
	s.emit(ctx, events.TaskCreated, task.ID, userID)
	return task, nil
}

func (s *taskServiceImpl) Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, userID, taskID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
				"error", redact.Error(err),
				"task_id", taskID,
				"user_id", userID)
		}
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// Update reads the task under a row lock, applies the patch and writes it
// back in the same transaction. Validation failures roll back with nothing
// written.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	userID, taskID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetForUpdate(ctx, userID, taskID)
		if err != nil {
			return err
		}
		if err := task.Apply(patch, s.now()); err != nil {
			return err
		}
		if err := txStore.Update(ctx, task); err != nil {
			return err
		}

		updated = task
		return nil
	})
	if err != nil {
		mapped := NewTaskServiceError("update_task", "failed to update task", err)
		if _, unexpected := mapped.(*TaskServiceError); unexpected {
			log.Error("failed to update task",
				"error", redact.Error(err),
				"task_id", taskID,
				"user_id", userID)
		}
		return nil, mapped
	}

	log.Info("task updated",
		"task_id", taskID,
		"user_id", userID)
	s.emit(ctx, events.TaskUpdated, taskID, userID)
	return updated, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Delete(ctx, userID, taskID)
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to delete task",
				"error", redact.Error(err),
				"task_id", taskID,
				"user_id", userID)
		}
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted",
		"task_id", taskID,
		"user_id", userID)
	s.emit(ctx, events.TaskDeleted, taskID, userID)
	return nil
}

func (s *taskServiceImpl) Stats(ctx context.Context, userID uuid.UUID) (*domain.TaskStats, error) {
	stats, err := s.taskStore.Stats(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to compute task stats",
			"error", redact.Error(err),
			"user_id", userID)
		return nil, NewTaskServiceError("task_stats", "failed to compute statistics", err)
	}
	return stats, nil
}

// emit publishes a lifecycle event for a committed change. The change is
// already durable, so a failed emission is only logged.
func (s *taskServiceImpl) emit(ctx context.Context, eventType string, taskID, userID uuid.UUID) {
	if err := s.emitter.EmitEvent(ctx, events.NewTaskEvent(eventType, taskID, userID)); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit task event",
			"error", redact.Error(err),
			"event_type", eventType,
			"task_id", taskID)
	}
}
