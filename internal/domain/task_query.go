package domain

import "strings"

// SortField names a task attribute that lists can be ordered by.
type SortField string

// Supported sort fields.
const (
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
	SortByDueDate   SortField = "due_date"
	SortByTitle     SortField = "title"
	SortByPriority  SortField = "priority"
)

// SortOrder is the direction of a list ordering.
type SortOrder string

// Supported sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Defaults applied when a list query leaves sorting unspecified.
const (
	DefaultSortField = SortByCreatedAt
	DefaultSortOrder = SortDesc
)

// ParseSortField validates s. An empty string yields DefaultSortField.
func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return DefaultSortField, nil
	}
	switch f := SortField(s); f {
	case SortByCreatedAt, SortByUpdatedAt, SortByDueDate, SortByTitle, SortByPriority:
		return f, nil
	default:
		return "", ErrInvalidSortField
	}
}

// ParseSortOrder maps "asc" (any case) to SortAsc and everything else,
// including the empty string, to SortDesc.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(s, string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// TaskQuery selects and orders a user's tasks. Nil filters do not constrain
// the result; set filters are combined with AND.
type TaskQuery struct {
	Completed *bool
	Priority  *Priority
	SortBy    SortField
	SortOrder SortOrder
}

// Normalize fills in default sorting and validates the query.
func (q TaskQuery) Normalize() (TaskQuery, error) {
	if q.SortBy == "" {
		q.SortBy = DefaultSortField
	}
	if _, err := ParseSortField(string(q.SortBy)); err != nil {
		return q, err
	}
	if q.SortOrder != SortAsc {
		q.SortOrder = SortDesc
	}
	if q.Priority != nil && !q.Priority.IsValid() {
		return q, ErrInvalidPriority
	}
	return q, nil
}

// TaskStats summarizes a user's tasks.
type TaskStats struct {
	Total             int
	Completed         int
	Pending           int
	PriorityBreakdown PriorityBreakdown
}

// PriorityBreakdown counts incomplete tasks per priority.
type PriorityBreakdown struct {
	High   int
	Medium int
	Low    int
}

// NewTaskStats derives Pending from the total and completed counts.
func NewTaskStats(total, completed int, breakdown PriorityBreakdown) *TaskStats {
	return &TaskStats{
		Total:             total,
		Completed:         completed,
		Pending:           total - completed,
		PriorityBreakdown: breakdown,
	}
}
