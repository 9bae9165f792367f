package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/tasklist/internal/models"
)

// FormValues is the trimmed content of a TaskForm.
type FormValues struct {
	Title       string
	Description string
}

// SubmitFunc starts the round trip for a submitted form.
type SubmitFunc func(FormValues) tea.Cmd

// TaskForm collects a title and description and hands them to a SubmitFunc.
// A form built with initial data is an edit form and keeps its values after
// a successful submit; a blank form clears itself.
type TaskForm struct {
	title       textinput.Model
	description textinput.Model
	focus       int
	hasInitial  bool
	submitting  bool
	onSubmit    SubmitFunc
}

// NewTaskForm returns an empty form.
func NewTaskForm(onSubmit SubmitFunc) TaskForm {
	return TaskForm{
		title:       newInput("Title", models.MaxTitleLength),
		description: newInput("Description", models.MaxDescriptionLength),
		onSubmit:    onSubmit,
	}
}

// NewEditForm returns a form prefilled from task.
func NewEditForm(task models.Task, onSubmit SubmitFunc) TaskForm {
	f := NewTaskForm(onSubmit)
	f.title.SetValue(task.Title)
	f.description.SetValue(task.Description)
	f.hasInitial = true
	return f
}

// Values returns the trimmed title and description.
func (f TaskForm) Values() FormValues {
	return FormValues{
		Title:       strings.TrimSpace(f.title.Value()),
		Description: strings.TrimSpace(f.description.Value()),
	}
}

// CanSubmit reports whether submit would do anything.
func (f TaskForm) CanSubmit() bool {
	return !f.submitting && f.Values().Title != ""
}

func (f TaskForm) Submitting() bool {
	return f.submitting
}

// Submit starts a submission. It returns nil when the trimmed title is
// empty or a submission is already in flight.
func (f *TaskForm) Submit() tea.Cmd {
	if !f.CanSubmit() {
		return nil
	}
	f.submitting = true
	return f.onSubmit(f.Values())
}

// Resolve ends the in-flight submission.
func (f *TaskForm) Resolve(ok bool) {
	f.submitting = false
	if ok && !f.hasInitial {
		f.title.Reset()
		f.description.Reset()
		f.focus = 0
	}
}

// NextField moves focus from title to description. It returns false when
// focus is already on the last field.
func (f *TaskForm) NextField() bool {
	if f.focus == 1 {
		return false
	}
	f.focus = 1
	return true
}

// FocusTitle moves focus to the title field.
func (f *TaskForm) FocusTitle() {
	f.focus = 0
}

// HandleKey edits the focused field; enter submits.
func (f *TaskForm) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if f.submitting {
		return nil
	}
	switch msg.Type {
	case tea.KeyEnter:
		return f.Submit()
	case tea.KeyUp, tea.KeyDown:
		f.focus = 1 - f.focus
		return nil
	}
	if f.focus == 0 {
		updateInput(&f.title, msg)
	} else {
		updateInput(&f.description, msg)
	}
	return nil
}

// View renders the form. focused controls the cursor.
func (f TaskForm) View(focused bool) string {
	var b strings.Builder
	b.WriteString(inputView(f.title, focused && f.focus == 0))
	b.WriteString("\n")
	b.WriteString(inputView(f.description, focused && f.focus == 1))
	b.WriteString("\n")

	label := "Add Task"
	if f.hasInitial {
		label = "Save"
	}
	switch {
	case f.submitting:
		b.WriteString(mutedStyle.Render("  [ Saving... ]"))
	case !f.CanSubmit():
		b.WriteString(mutedStyle.Render("  [ " + label + " ]"))
	default:
		b.WriteString("  [ " + label + " ] " + mutedStyle.Render("enter"))
	}
	return b.String()
}
