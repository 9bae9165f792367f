package postgres

import (
	"time"

	"github.com/mmynk/tasklist/internal/models"
)

// userRecord is the gorm row for a user.
type userRecord struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"uniqueIndex;size:191;not null"`
	Name         string    `gorm:"size:64;not null"`
	PasswordHash string    `gorm:"size:191;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (userRecord) TableName() string { return "users" }

// taskRecord is the gorm row for a task. Timestamps are managed by the
// service layer, so gorm's automatic tracking is off. Seq records insertion
// order and breaks created_at ties.
type taskRecord struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Seq         int64     `gorm:"autoIncrement;not null"`
	OwnerID     string    `gorm:"size:36;not null;index:idx_tasks_owner_created,priority:1"`
	Title       string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:500;not null;default:''"`
	Completed   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false;index:idx_tasks_owner_created,priority:2"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (taskRecord) TableName() string { return "tasks" }

func userToRecord(u *models.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *userRecord) toModel() *models.User {
	return &models.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

func taskToRecord(t *models.Task) taskRecord {
	return taskRecord{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r *taskRecord) toModel() *models.Task {
	return &models.Task{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}
