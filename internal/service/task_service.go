package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/tasklist/internal/models"
	"github.com/mmynk/tasklist/internal/storage"
)

// TaskService implements task CRUD scoped to the task owner.
//
// Concurrent updates to the same task are last-write-wins: each Update reads
// the current row, applies the patch and writes every mutable column back.
type TaskService struct {
	store  storage.TaskStore
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskService creates a new TaskService with the given storage backend.
func NewTaskService(store storage.TaskStore, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		store:  store,
		logger: logger,
		now:    defaultNow,
	}
}

// Timestamps are kept at microsecond precision, the finest both storage
// backends preserve.
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// List returns all tasks owned by ownerID, newest-created first.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	tasks, err := s.store.ListTasksByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("List tasks failed", "user_id", ownerID, "error", err)
		return nil, err
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}

	s.logger.Debug("List tasks successful", "user_id", ownerID, "count", len(tasks))
	return tasks, nil
}

// Create validates and persists a new task for ownerID.
func (s *TaskService) Create(ctx context.Context, ownerID, title, description string) (*models.Task, error) {
	title = models.TrimField(title)
	description = models.TrimField(description)

	if errs := models.ValidateTask(title, description); len(errs) > 0 {
		return nil, errs
	}

	now := s.now()
	task := &models.Task{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Save to storage (generates ID)
	if err := s.store.CreateTask(ctx, task); err != nil {
		s.logger.Error("Create task failed", "user_id", ownerID, "error", err)
		return nil, err
	}

	s.logger.Info("Task created", "task_id", task.ID, "user_id", ownerID)
	return task, nil
}

// Update applies the present fields of patch to a task owned by ownerID.
// Fails with ErrNotFound, then ErrForbidden, then models.FieldErrors.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, patch models.TaskPatch) (*models.Task, error) {
	task, err := s.ownedTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	patch.Apply(task)
	if errs := models.ValidateTask(task.Title, task.Description); len(errs) > 0 {
		return nil, errs
	}

	// updatedAt must move forward even when two writes land in the same tick.
	updatedAt := s.now()
	if !updatedAt.After(task.UpdatedAt) {
		updatedAt = task.UpdatedAt.Add(time.Microsecond)
	}
	task.UpdatedAt = updatedAt

	if err := s.store.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("Update task failed", "task_id", taskID, "error", err)
		return nil, err
	}

	s.logger.Info("Task updated", "task_id", taskID, "user_id", ownerID)
	return task, nil
}

// Delete removes a task owned by ownerID.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if _, err := s.ownedTask(ctx, ownerID, taskID); err != nil {
		return err
	}

	if err := s.store.DeleteTask(ctx, taskID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Error("Delete task failed", "task_id", taskID, "error", err)
		return err
	}

	s.logger.Info("Task deleted", "task_id", taskID, "user_id", ownerID)
	return nil
}

// ownedTask loads a task and checks existence before ownership.
func (s *TaskService) ownedTask(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	if task.OwnerID != ownerID {
		s.logger.Warn("Task access denied", "task_id", taskID, "user_id", ownerID)
		return nil, ErrForbidden
	}

	return task, nil
}
