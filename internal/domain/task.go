package domain

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the urgency level of a task.
type Priority string

// Supported priority values.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is applied when a task is created without one.
const DefaultPriority = PriorityMedium

// ParsePriority validates s as a Priority. An empty string yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return DefaultPriority, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// IsValid reports whether p is one of the supported priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank orders priorities from least to most urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask builds a new, incomplete task owned by userID.
// An empty priority defaults to medium. Returns a validation error if the
// title is empty or the priority is unknown.
func NewTask(
	userID uuid.UUID,
	title, description string,
	priority Priority,
	dueDate *time.Time,
) (*Task, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	if priority == "" {
		priority = DefaultPriority
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Priority:    priority,
		DueDate:     utcPtr(dueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the task invariants.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyOwner
	}
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}
	return nil
}

// IsOwnedBy reports whether userID owns the task.
func (t *Task) IsOwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}

// TaskPatch carries a partial update. Nil fields are left untouched.
// DueDate set to a pointer to "" clears the due date.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	DueDate     *string
}

// Apply mutates t with the fields present in the patch and refreshes
// UpdatedAt, even when no value changes. On error t is left unmodified.
func (t *Task) Apply(patch TaskPatch, now time.Time) error {
	next := *t

	if patch.Title != nil {
		if *patch.Title == "" {
			return ErrEmptyTitle
		}
		next.Title = *patch.Title
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Completed != nil {
		next.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		p := Priority(*patch.Priority)
		if !p.IsValid() {
			return ErrInvalidPriority
		}
		next.Priority = p
	}
	if patch.DueDate != nil {
		if *patch.DueDate == "" {
			next.DueDate = nil
		} else {
			due, err := ParseDueDate(*patch.DueDate)
			if err != nil {
				return err
			}
			next.DueDate = &due
		}
	}

	now = now.UTC()
	if now.Before(t.UpdatedAt) {
		now = t.UpdatedAt
	}
	next.UpdatedAt = now

	*t = next
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
