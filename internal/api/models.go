package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires
	ExpiresAt string `json:"expires_at"`
}

// dueDateField tracks whether due_date was sent at all, since an explicit
// null or empty value clears the due date while an absent one leaves it.
type dueDateField struct {
	Present bool
	Value   string
	Invalid bool
}

// UnmarshalJSON accepts a string, or any false-like value (null, false, 0),
// which is read as "no due date". Other values mark the field invalid.
func (f *dueDateField) UnmarshalJSON(data []byte) error {
	f.Present = true

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		f.Value = ""
	case string:
		f.Value = t
	case bool:
		f.Invalid = t
	case float64:
		f.Invalid = t != 0
	default:
		f.Invalid = true
	}
	return nil
}

// ptr returns the due date string to hand to the service, nil when absent.
func (f dueDateField) ptr() *string {
	if !f.Present {
		return nil
	}
	v := f.Value
	return &v
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    *string      `json:"priority"`
	DueDate     dueDateField `json:"due_date"`
}

// UpdateTaskRequest defines the payload for updating a task.
// Fields left out of the JSON body are not changed.
type UpdateTaskRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Completed   *bool        `json:"completed"`
	Priority    *string      `json:"priority"`
	DueDate     dueDateField `json:"due_date"`
}

func (r UpdateTaskRequest) toPatch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Priority:    r.Priority,
		DueDate:     r.DueDate.ptr(),
	}
}

// TaskResponse is the JSON representation of a task.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func newTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Completed:   t.Completed,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func newTaskResponses(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskResponse(t))
	}
	return out
}

// TaskEnvelope wraps a single task, optionally with a status message.
type TaskEnvelope struct {
	Message string       `json:"message,omitempty"`
	Task    TaskResponse `json:"task"`
}

// MessageResponse carries a status message only.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatsResponse is the JSON representation of task statistics.
type StatsResponse struct {
	TotalTasks        int                       `json:"total_tasks"`
	CompletedTasks    int                       `json:"completed_tasks"`
	PendingTasks      int                       `json:"pending_tasks"`
	PriorityBreakdown PriorityBreakdownResponse `json:"priority_breakdown"`
}

// PriorityBreakdownResponse counts incomplete tasks per priority.
type PriorityBreakdownResponse struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

func newStatsResponse(s *domain.TaskStats) StatsResponse {
	return StatsResponse{
		TotalTasks:     s.Total,
		CompletedTasks: s.Completed,
		PendingTasks:   s.Pending,
		PriorityBreakdown: PriorityBreakdownResponse{
			High:   s.PriorityBreakdown.High,
			Medium: s.PriorityBreakdown.Medium,
			Low:    s.PriorityBreakdown.Low,
		},
	}
}
