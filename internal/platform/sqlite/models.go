package sqlite

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
)

// Timestamps are owned by the domain layer, so GORM's auto timestamps are off.

type userModel struct {
	ID             string    `gorm:"primarykey;size:36"`
	Email          string    `gorm:"size:255;not null;uniqueIndex"`
	HashedPassword string    `gorm:"size:60;not null"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (userModel) TableName() string {
	return "users"
}

type taskModel struct {
	ID          string     `gorm:"primarykey;size:36"`
	UserID      string     `gorm:"size:36;not null;index:idx_tasks_user_created,priority:1"`
	User        *userModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title       string     `gorm:"not null"`
	Description string     `gorm:"not null;default:''"`
	Priority    string     `gorm:"size:10;not null;default:medium"`
	Completed   bool       `gorm:"not null;default:false"`
	DueDate     *time.Time
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false;index:idx_tasks_user_created,priority:2"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (taskModel) TableName() string {
	return "tasks"
}

func toUserModel(u *domain.User) *userModel {
	return &userModel{
		ID:             u.ID.String(),
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		CreatedAt:      u.CreatedAt.UTC(),
		UpdatedAt:      u.UpdatedAt.UTC(),
	}
}

func (m *userModel) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:             id,
		Email:          m.Email,
		HashedPassword: m.HashedPassword,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}, nil
}

func toTaskModel(t *domain.Task) *taskModel {
	m := &taskModel{
		ID:          t.ID.String(),
		UserID:      t.UserID.String(),
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
	if t.DueDate != nil {
		due := t.DueDate.UTC()
		m.DueDate = &due
	}
	return m
}

func (m *taskModel) toDomain() (*domain.Task, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, err
	}

	t := &domain.Task{
		ID:          id,
		UserID:      userID,
		Title:       m.Title,
		Description: m.Description,
		Priority:    domain.Priority(m.Priority),
		Completed:   m.Completed,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if m.DueDate != nil {
		due := m.DueDate.UTC()
		t.DueDate = &due
	}
	return t, nil
}
