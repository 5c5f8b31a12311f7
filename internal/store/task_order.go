package store

import (
	"fmt"

	"github.com/phrazzld/todo-api/internal/domain"
)

// priorityRankExpr orders priorities by urgency rather than alphabetically.
const priorityRankExpr = "CASE priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 ELSE 0 END"

var sortColumns = map[domain.SortField]string{
	domain.SortByCreatedAt: "created_at",
	domain.SortByUpdatedAt: "updated_at",
	domain.SortByDueDate:   "due_date",
	domain.SortByTitle:     "title",
	domain.SortByPriority:  priorityRankExpr,
}

// TaskOrderBy returns the ORDER BY expression for a normalized query, valid
// in both Postgres and SQLite. Tasks without a due date sort last regardless
// of direction, and ties are broken by id.
func TaskOrderBy(q domain.TaskQuery) (string, error) {
	col, ok := sortColumns[q.SortBy]
	if !ok {
		return "", domain.ErrInvalidSortField
	}

	dir := "DESC"
	if q.SortOrder == domain.SortAsc {
		dir = "ASC"
	}

	if q.SortBy == domain.SortByDueDate {
		return fmt.Sprintf("due_date IS NULL, due_date %s, id ASC", dir), nil
	}
	return fmt.Sprintf("%s %s, id ASC", col, dir), nil
}
