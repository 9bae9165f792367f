package models

import "time"

const (
	// MaxTitleLength is the maximum number of characters in a task title.
	MaxTitleLength = 100
	// MaxDescriptionLength is the maximum number of characters in a task description.
	MaxDescriptionLength = 500
)

// Task represents a single to-do item.
type Task struct {
	// ID is the unique identifier for the task (UUID format).
	ID string `json:"id"`

	// Title is the required short summary of the task.
	Title string `json:"title"`

	// Description is optional free text.
	Description string `json:"description"`

	// Completed reports whether the task is done.
	Completed bool `json:"completed"`

	// OwnerID is the ID of the user who created the task.
	// Set at creation and never changed.
	OwnerID string `json:"owner"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskPatch carries a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// Apply copies the present fields of p onto t.
// Text fields are trimmed the same way they are on creation.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = TrimField(*p.Title)
	}
	if p.Description != nil {
		t.Description = TrimField(*p.Description)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
