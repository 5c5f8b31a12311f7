package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Every lookup and mutation is scoped to an owner: a task that exists but
// belongs to another user is reported exactly like a missing one.
type TaskStore interface {
	// Create saves a new task.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task owned by userID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error)

	// GetForUpdate is GetByID with a row lock held until the surrounding
	// transaction ends, on stores that support one.
	GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error)

	// Update overwrites the mutable fields of an existing task.
	// Returns ErrTaskNotFound if no such task exists for the task's owner.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task owned by userID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// List returns the owner's tasks matching q, ordered as q requests.
	// q must already be normalized. Returns an empty slice when nothing matches.
	List(ctx context.Context, userID uuid.UUID, q domain.TaskQuery) ([]*domain.Task, error)

	// Stats aggregates the owner's tasks.
	Stats(ctx context.Context, userID uuid.UUID) (*domain.TaskStats, error)

	// WithTx returns a TaskStore bound to tx.
	WithTx(tx *sql.Tx) TaskStore
}
