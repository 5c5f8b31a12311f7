package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
)

// getPathUUID extracts a UUID from the URL path parameters.
// Returns false when the parameter is missing or not a UUID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, paramName))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// handleUserID extracts the authenticated user ID, writing a 401 response
// when the auth middleware did not set one.
func handleUserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// handleUserIDAndPathUUID extracts both the user ID from context and a UUID
// from the path. A malformed path ID cannot name an existing task, so it is
// answered with 404 like any other unknown task.
func handleUserIDAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (uuid.UUID, uuid.UUID, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	pathID, ok := getPathUUID(r, paramName)
	if !ok {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		shared.RespondWithError(w, r, http.StatusNotFound, msgTaskNotFound)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}

// parseTaskQuery reads the list filters and ordering from the query string.
// A present "completed" parameter filters on completed == (value is "true",
// case-insensitively); an empty "priority" is ignored.
func parseTaskQuery(r *http.Request) (domain.TaskQuery, error) {
	values := r.URL.Query()
	var q domain.TaskQuery

	if values.Has("completed") {
		completed := strings.EqualFold(values.Get("completed"), "true")
		q.Completed = &completed
	}
	if p := values.Get("priority"); p != "" {
		priority := domain.Priority(p)
		q.Priority = &priority
	}

	sortBy, err := domain.ParseSortField(values.Get("sort_by"))
	if err != nil {
		return q, err
	}
	q.SortBy = sortBy
	q.SortOrder = domain.ParseSortOrder(values.Get("sort_order"))

	return q.Normalize()
}
