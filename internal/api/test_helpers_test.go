package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/stretchr/testify/require"
)

// stubTaskService implements service.TaskService with overridable functions.
type stubTaskService struct {
	ListFn   func(ctx context.Context, userID uuid.UUID, q domain.TaskQuery) ([]*domain.Task, error)
	CreateFn func(ctx context.Context, userID uuid.UUID, params service.CreateTaskParams) (*domain.Task, error)
	GetFn    func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	UpdateFn func(ctx context.Context, userID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	DeleteFn func(ctx context.Context, userID, taskID uuid.UUID) error
	StatsFn  func(ctx context.Context, userID uuid.UUID) (*domain.TaskStats, error)
}

func (s *stubTaskService) List(ctx context.Context, userID uuid.UUID, q domain.TaskQuery) ([]*domain.Task, error) {
	return s.ListFn(ctx, userID, q)
}

func (s *stubTaskService) Create(ctx context.Context, userID uuid.UUID, params service.CreateTaskParams) (*domain.Task, error) {
	return s.CreateFn(ctx, userID, params)
}

func (s *stubTaskService) Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return s.GetFn(ctx, userID, taskID)
}

func (s *stubTaskService) Update(ctx context.Context, userID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	return s.UpdateFn(ctx, userID, taskID, patch)
}

func (s *stubTaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	return s.DeleteFn(ctx, userID, taskID)
}

func (s *stubTaskService) Stats(ctx context.Context, userID uuid.UUID) (*domain.TaskStats, error) {
	return s.StatsFn(ctx, userID)
}

// stubUserService implements service.UserService.
type stubUserService struct {
	RegisterFn     func(ctx context.Context, email, password string) (*domain.User, error)
	AuthenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return s.RegisterFn(ctx, email, password)
}

func (s *stubUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return s.AuthenticateFn(ctx, email, password)
}

// taskRouter mounts h the same way the server does, with userID injected
// in place of the auth middleware. A nil userID leaves the context empty.
func taskRouter(h *TaskHandler, userID *uuid.UUID) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != nil {
				req = req.WithContext(shared.WithUserID(req.Context(), *userID))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/tasks", h.ListTasks)
	r.Post("/tasks", h.CreateTask)
	r.Get("/tasks/stats", h.GetStats)
	r.Get("/tasks/{id}", h.GetTask)
	r.Put("/tasks/{id}", h.UpdateTask)
	r.Delete("/tasks/{id}", h.DeleteTask)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, rec).Error
}

func sampleTask(userID uuid.UUID) *domain.Task {
	task, err := domain.NewTask(userID, "Write report", "quarterly numbers", domain.PriorityHigh, nil)
	if err != nil {
		panic(err)
	}
	return task
}
