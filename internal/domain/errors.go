// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or query fails validation.
	// All field-specific validation errors below wrap it, so callers can check
	// for the whole class with errors.Is(err, ErrValidation).
	ErrValidation = errors.New("validation failed")

	// ErrTitleRequired is returned when a task is created without a title.
	ErrTitleRequired = fmt.Errorf("%w: title is required", ErrValidation)

	// ErrEmptyTitle is returned when an update would leave a task without a title.
	ErrEmptyTitle = fmt.Errorf("%w: title cannot be empty", ErrValidation)

	// ErrInvalidDueDate is returned when a due date cannot be parsed.
	ErrInvalidDueDate = fmt.Errorf("%w: invalid due_date format", ErrValidation)

	// ErrInvalidPriority is returned for a priority outside low/medium/high.
	ErrInvalidPriority = fmt.Errorf("%w: invalid priority", ErrValidation)

	// ErrInvalidSortField is returned when a list query names an unsupported sort key.
	ErrInvalidSortField = fmt.Errorf("%w: invalid sort field", ErrValidation)

	// ErrEmptyTaskID and ErrEmptyOwner guard the identity fields of a task.
	ErrEmptyTaskID = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrEmptyOwner  = fmt.Errorf("%w: task owner cannot be empty", ErrValidation)
)
