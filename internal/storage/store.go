// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tasklist/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate record")
)

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser persists a new user.
	// Returns ErrDuplicate if the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by normalized email.
	// Returns ErrNotFound if no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// TaskStore persists tasks. It performs no ownership checks; callers scope
// access by owner.
type TaskStore interface {
	// CreateTask persists a new task.
	// The task.ID field will be populated by the store if empty.
	CreateTask(ctx context.Context, task *models.Task) error

	// GetTask retrieves a task by ID.
	// Returns ErrNotFound if the task does not exist.
	GetTask(ctx context.Context, taskID string) (*models.Task, error)

	// ListTasksByOwner returns all tasks of an owner, newest-created first.
	ListTasksByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)

	// UpdateTask overwrites the mutable fields of an existing task
	// (title, description, completed, updated_at).
	// Returns ErrNotFound if the task does not exist.
	UpdateTask(ctx context.Context, task *models.Task) error

	// DeleteTask removes a task by ID.
	// Returns ErrNotFound if the task does not exist.
	DeleteTask(ctx context.Context, taskID string) error
}

// Store defines the full set of storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	UserStore
	TaskStore

	// Close releases any resources held by the store.
	Close() error
}
