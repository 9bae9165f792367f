package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/tasklist/internal/models"
)

const timeLayout = "Jan 2, 2006 3:04 PM"

type itemMode int

const (
	itemViewing itemMode = iota
	itemEditing
	itemConfirmingDelete
)

// ItemActions starts the round trips a TaskItem can request.
type ItemActions struct {
	Update func(id string, patch models.TaskPatch) tea.Cmd
	Delete func(id string) tea.Cmd
}

// TaskItem is one task row with its own edit and delete-confirmation state.
// While a request is in flight the item ignores input.
type TaskItem struct {
	Task    models.Task
	mode    itemMode
	edit    TaskForm
	busy    bool
	actions ItemActions
}

func NewTaskItem(task models.Task, actions ItemActions) TaskItem {
	return TaskItem{Task: task, actions: actions}
}

func (it TaskItem) Busy() bool             { return it.busy }
func (it TaskItem) Editing() bool          { return it.mode == itemEditing }
func (it TaskItem) ConfirmingDelete() bool { return it.mode == itemConfirmingDelete }

// Toggle flips completed, sending only that field.
func (it *TaskItem) Toggle() tea.Cmd {
	if it.busy || it.mode != itemViewing {
		return nil
	}
	completed := !it.Task.Completed
	it.busy = true
	return it.actions.Update(it.Task.ID, models.TaskPatch{Completed: &completed})
}

// StartEdit opens the inline editor with the task's current values.
func (it *TaskItem) StartEdit() {
	if it.busy || it.mode != itemViewing {
		return
	}
	id := it.Task.ID
	update := it.actions.Update
	it.edit = NewEditForm(it.Task, func(v FormValues) tea.Cmd {
		title, description := v.Title, v.Description
		return update(id, models.TaskPatch{Title: &title, Description: &description})
	})
	it.mode = itemEditing
}

// SaveEdit submits the editor. Nothing is sent when the title is blank.
func (it *TaskItem) SaveEdit() tea.Cmd {
	if it.busy || it.mode != itemEditing {
		return nil
	}
	cmd := it.edit.Submit()
	if cmd != nil {
		it.busy = true
	}
	return cmd
}

// CancelEdit discards the editor; the next edit starts from the task again.
func (it *TaskItem) CancelEdit() {
	if it.busy || it.mode != itemEditing {
		return
	}
	it.mode = itemViewing
	it.edit = TaskForm{}
}

// RequestDelete asks for confirmation.
func (it *TaskItem) RequestDelete() {
	if it.busy || it.mode != itemViewing {
		return
	}
	it.mode = itemConfirmingDelete
}

// ConfirmDelete sends the delete.
func (it *TaskItem) ConfirmDelete() tea.Cmd {
	if it.busy || it.mode != itemConfirmingDelete {
		return nil
	}
	it.busy = true
	return it.actions.Delete(it.Task.ID)
}

func (it *TaskItem) CancelDelete() {
	if it.busy || it.mode != itemConfirmingDelete {
		return
	}
	it.mode = itemViewing
}

// Resolve ends the in-flight request. On success the item adopts task
// (when non-nil) and an open editor closes; on failure the editor stays
// open with what the user typed.
func (it *TaskItem) Resolve(task *models.Task, err error) {
	it.busy = false
	switch it.mode {
	case itemEditing:
		it.edit.Resolve(err == nil)
		if err == nil {
			it.mode = itemViewing
			it.edit = TaskForm{}
		}
	case itemConfirmingDelete:
		it.mode = itemViewing
	}
	if err == nil && task != nil {
		it.Task = *task
	}
}

// HandleKey maps keys to item actions.
func (it *TaskItem) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if it.busy {
		return nil
	}

	switch it.mode {
	case itemEditing:
		switch msg.Type {
		case tea.KeyEsc:
			it.CancelEdit()
			return nil
		case tea.KeyTab:
			if !it.edit.NextField() {
				it.edit.FocusTitle()
			}
			return nil
		case tea.KeyEnter:
			return it.SaveEdit()
		}
		return it.edit.HandleKey(msg)

	case itemConfirmingDelete:
		switch msg.String() {
		case "y", "Y":
			return it.ConfirmDelete()
		case "n", "N", "esc":
			it.CancelDelete()
		}
		return nil
	}

	switch msg.String() {
	case " ", "x":
		return it.Toggle()
	case "e":
		it.StartEdit()
	case "d":
		it.RequestDelete()
	}
	return nil
}

// View renders the item. selected marks the cursor row.
func (it TaskItem) View(selected bool) string {
	pointer := "  "
	if selected {
		pointer = cursorStyle.Render("> ")
	}

	if it.mode == itemEditing {
		return pointer + "Editing\n" + indent(it.edit.View(selected), "    ")
	}

	box := "[ ]"
	title := it.Task.Title
	if it.Task.Completed {
		box = "[x]"
		title = doneStyle.Render(title)
	}

	var b strings.Builder
	b.WriteString(pointer + box + " " + title)
	if it.busy {
		b.WriteString(mutedStyle.Render("  (working...)"))
	}
	b.WriteString("\n")

	if it.Task.Description != "" {
		b.WriteString("      " + mutedStyle.Render(it.Task.Description) + "\n")
	}
	b.WriteString("      " + mutedStyle.Render(formatTimes(it.Task)))

	if it.mode == itemConfirmingDelete {
		b.WriteString("\n      " + warnStyle.Render("Delete this task? (y/n)"))
	}
	return b.String()
}

// formatTimes shows the created time, plus the updated time when it differs.
func formatTimes(t models.Task) string {
	s := "Created: " + t.CreatedAt.Local().Format(timeLayout)
	if !t.UpdatedAt.IsZero() && !t.UpdatedAt.Equal(t.CreatedAt) {
		s += fmt.Sprintf(" | Updated: %s", t.UpdatedAt.Local().Format(timeLayout))
	}
	return s
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

