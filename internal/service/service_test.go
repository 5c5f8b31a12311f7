package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/events"
	"github.com/phrazzld/todo-api/internal/platform/sqlite"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEventEmitter implements events.EventEmitter for testing
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.TaskEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// eventOfType matches a TaskEvent with the given type.
func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e *events.TaskEvent) bool { return e.Type == eventType })
}

// failingTaskStore wraps a real store and fails selected operations.
type failingTaskStore struct {
	store.TaskStore
	FailOnCreate bool
	FailOnUpdate bool
}

func (f *failingTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if f.FailOnCreate {
		return errors.New("simulated create failure")
	}
	return f.TaskStore.Create(ctx, task)
}

func (f *failingTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if f.FailOnUpdate {
		return errors.New("simulated update failure")
	}
	return f.TaskStore.Update(ctx, task)
}

func (f *failingTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &failingTaskStore{
		TaskStore:    f.TaskStore.WithTx(tx),
		FailOnCreate: f.FailOnCreate,
		FailOnUpdate: f.FailOnUpdate,
	}
}

type testEnv struct {
	sqlDB     *sql.DB
	taskStore store.TaskStore
	userStore store.UserStore
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(":memory:", nil)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return &testEnv{
		sqlDB:     sqlDB,
		taskStore: sqlite.NewTaskStore(db, nil),
		userStore: sqlite.NewUserStore(db, nil),
	}
}

func (e *testEnv) createUser(t *testing.T, email string) uuid.UUID {
	t.Helper()
	user, err := domain.NewUser(email, "hashed-password")
	require.NoError(t, err)
	require.NoError(t, e.userStore.Create(context.Background(), user))
	return user.ID
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
