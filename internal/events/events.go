package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Task lifecycle event types.
const (
	TaskCreated = "task.created"
	TaskUpdated = "task.updated"
	TaskDeleted = "task.deleted"
)

// TaskEvent records a committed change to a task.
type TaskEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	TaskID     uuid.UUID `json:"task_id"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewTaskEvent creates an event of eventType for the given task and owner.
func NewTaskEvent(eventType string, taskID, userID uuid.UUID) *TaskEvent {
	return &TaskEvent{
		ID:         uuid.New(),
		Type:       eventType,
		TaskID:     taskID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
}

// EventHandler processes task events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *TaskEvent) error

// HandleEvent calls f.
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *TaskEvent) error {
	return f(ctx, event)
}

// EventEmitter publishes events to registered handlers. Services depend on
// this interface only.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *TaskEvent) error
}
