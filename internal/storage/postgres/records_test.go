package postgres

import (
	"testing"
	"time"

	"github.com/mmynk/tasklist/internal/models"
)

func TestTaskRecordRoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	task := &models.Task{
		ID:          "task-1",
		OwnerID:     "user-1",
		Title:       "Buy milk",
		Description: "semi-skimmed",
		Completed:   true,
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Minute),
	}

	rec := taskToRecord(task)
	got := rec.toModel()

	if got.ID != task.ID || got.OwnerID != task.OwnerID || got.Title != task.Title ||
		got.Description != task.Description || got.Completed != task.Completed {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, task)
	}
	if !got.CreatedAt.Equal(task.CreatedAt) || !got.UpdatedAt.Equal(task.UpdatedAt) {
		t.Errorf("timestamps mismatch: got %v/%v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestUserRecordRoundTrip(t *testing.T) {
	user := models.NewUser("a@x.com", "Alice", "hash")

	rec := userToRecord(user)
	got := rec.toModel()

	if got.ID != user.ID || got.Email != user.Email || got.PasswordHash != user.PasswordHash {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, user)
	}
}

func TestTableNames(t *testing.T) {
	if (userRecord{}).TableName() != "users" {
		t.Error("unexpected users table name")
	}
	if (taskRecord{}).TableName() != "tasks" {
		t.Error("unexpected tasks table name")
	}
}
