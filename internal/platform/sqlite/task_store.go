package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
	"gorm.io/gorm"
)

// TaskStore implements store.TaskStore with GORM.
type TaskStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewTaskStore creates a TaskStore. If logger is nil, slog.Default is used.
func NewTaskStore(db *gorm.DB, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(toTaskModel(task)).Error; err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}
	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var m taskModel
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id.String(), userID.String()).
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}
	return m.toDomain()
}

// GetForUpdate implements store.TaskStore.GetForUpdate. SQLite has no row
// locks; writers are serialized by the database lock instead.
func (s *TaskStore) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error) {
	return s.GetByID(ctx, userID, id)
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("id = ? AND user_id = ?", task.ID.String(), task.UserID.String()).
		Select("title", "description", "priority", "completed", "due_date", "updated_at").
		Updates(toTaskModel(task))
	if result.Error != nil {
		log.Error("failed to update task",
			slog.String("error", result.Error.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id.String(), userID.String()).
		Delete(&taskModel{})
	if result.Error != nil {
		log.Error("failed to delete task",
			slog.String("error", result.Error.Error()),
			slog.String("task_id", id.String()))
		return MapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(ctx context.Context, userID uuid.UUID, q domain.TaskQuery) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	orderBy, err := store.TaskOrderBy(q)
	if err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Where("user_id = ?", userID.String())
	if q.Completed != nil {
		query = query.Where("completed = ?", *q.Completed)
	}
	if q.Priority != nil {
		query = query.Where("priority = ?", string(*q.Priority))
	}

	var models []taskModel
	if err := query.Order(orderBy).Find(&models).Error; err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	tasks := make([]*domain.Task, 0, len(models))
	for i := range models {
		task, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

type statsRow struct {
	Total     int
	Completed int
	High      int
	Medium    int
	Low       int
}

// Stats implements store.TaskStore.Stats.
func (s *TaskStore) Stats(ctx context.Context, userID uuid.UUID) (*domain.TaskStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row statsRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN NOT completed AND priority = 'high' THEN 1 ELSE 0 END), 0) AS high,
			COALESCE(SUM(CASE WHEN NOT completed AND priority = 'medium' THEN 1 ELSE 0 END), 0) AS medium,
			COALESCE(SUM(CASE WHEN NOT completed AND priority = 'low' THEN 1 ELSE 0 END), 0) AS low
		FROM tasks
		WHERE user_id = ?
	`, userID.String()).Scan(&row).Error
	if err != nil {
		log.Error("failed to compute task stats",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	return domain.NewTaskStats(row.Total, row.Completed, domain.PriorityBreakdown{
		High:   row.High,
		Medium: row.Medium,
		Low:    row.Low,
	}), nil
}

// WithTx implements store.TaskStore.WithTx.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: bindTx(s.db, tx), logger: s.logger}
}
