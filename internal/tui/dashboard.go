package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/tasklist/internal/client"
	"github.com/mmynk/tasklist/internal/models"
	"github.com/mmynk/tasklist/internal/session"
)

type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

type taskCreatedMsg struct {
	task *models.Task
	err  error
}

type taskUpdatedMsg struct {
	id   string
	task *models.Task
	err  error
}

type taskDeletedMsg struct {
	id  string
	err error
}

// logoutMsg asks the App to end the session.
type logoutMsg struct{}

type dashboardFocus int

const (
	focusForm dashboardFocus = iota
	focusList
)

// Dashboard owns the signed-in user's task list. Every change is applied
// only after the server confirms it.
type Dashboard struct {
	ctx     context.Context
	session *session.Session

	form    TaskForm
	items   []TaskItem
	loading bool
	errText string
	focus   dashboardFocus
	cursor  int
}

func NewDashboard(ctx context.Context, sess *session.Session) *Dashboard {
	d := &Dashboard{
		ctx:     ctx,
		session: sess,
		loading: true,
	}
	d.form = NewTaskForm(d.createTask)
	return d
}

// Init fetches the task list.
func (d *Dashboard) Init() tea.Cmd {
	return d.fetchTasks()
}

// Tasks returns the tasks in server order (newest first).
func (d *Dashboard) Tasks() []models.Task {
	tasks := make([]models.Task, len(d.items))
	for i, it := range d.items {
		tasks[i] = it.Task
	}
	return tasks
}

// Error returns the banner text, or "".
func (d *Dashboard) Error() string {
	return d.errText
}

// DismissError hides the banner.
func (d *Dashboard) DismissError() {
	d.errText = ""
}

func (d *Dashboard) Loading() bool {
	return d.loading
}

func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		d.loading = false
		if msg.err != nil {
			d.fail(msg.err, "Failed to fetch tasks")
			return nil
		}
		d.items = make([]TaskItem, 0, len(msg.tasks))
		for _, t := range msg.tasks {
			d.items = append(d.items, NewTaskItem(t, d.itemActions()))
		}
		d.clampCursor()
		d.errText = ""

	case taskCreatedMsg:
		d.form.Resolve(msg.err == nil)
		if msg.err != nil {
			d.fail(msg.err, "Failed to create task")
			return nil
		}
		d.items = append([]TaskItem{NewTaskItem(*msg.task, d.itemActions())}, d.items...)
		d.errText = ""

	case taskUpdatedMsg:
		i := d.indexOf(msg.id)
		if i >= 0 {
			d.items[i].Resolve(msg.task, msg.err)
		}
		if msg.err != nil {
			d.fail(msg.err, "Failed to update task")
			return nil
		}
		d.errText = ""

	case taskDeletedMsg:
		i := d.indexOf(msg.id)
		if msg.err != nil {
			if i >= 0 {
				d.items[i].Resolve(nil, msg.err)
			}
			d.fail(msg.err, "Failed to delete task")
			return nil
		}
		if i >= 0 {
			d.items = append(d.items[:i], d.items[i+1:]...)
		}
		d.clampCursor()
		d.errText = ""

	case tea.KeyMsg:
		return d.handleKey(msg)
	}
	return nil
}

func (d *Dashboard) handleKey(msg tea.KeyMsg) tea.Cmd {
	if d.focus == focusForm {
		switch msg.Type {
		case tea.KeyTab:
			if !d.form.NextField() {
				d.focus = focusList
			}
			return nil
		case tea.KeyShiftTab:
			d.form.FocusTitle()
			return nil
		case tea.KeyEsc:
			d.DismissError()
			return nil
		}
		return d.form.HandleKey(msg)
	}

	if item := d.selected(); item != nil && (item.Editing() || item.ConfirmingDelete()) {
		return item.HandleKey(msg)
	}

	switch msg.String() {
	case "tab", "shift+tab":
		d.focus = focusForm
		d.form.FocusTitle()
		return nil
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
		return nil
	case "down", "j":
		if d.cursor < len(d.items)-1 {
			d.cursor++
		}
		return nil
	case "esc":
		d.DismissError()
		return nil
	case "r":
		d.loading = true
		return d.fetchTasks()
	case "L":
		return func() tea.Msg { return logoutMsg{} }
	case "q":
		return tea.Quit
	}

	if item := d.selected(); item != nil {
		return item.HandleKey(msg)
	}
	return nil
}

func (d *Dashboard) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Task Manager"))
	if u := d.session.User(); u != nil {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  signed in as %s <%s>", u.Name, u.Email)))
	}
	b.WriteString("\n\n")

	if d.errText != "" {
		b.WriteString(errorStyle.Render(d.errText+"  (esc to dismiss)") + "\n\n")
	}

	var form strings.Builder
	form.WriteString(headerStyle.Render("Add New Task") + "\n")
	form.WriteString(d.form.View(d.focus == focusForm))
	b.WriteString(panelStyle.Render(form.String()) + "\n\n")

	var list strings.Builder
	list.WriteString(headerStyle.Render("Your Tasks") + "  " + mutedStyle.Render(totalLabel(len(d.items))) + "\n\n")
	cursor := -1
	if d.focus == focusList {
		cursor = d.cursor
	}
	list.WriteString(TaskList{Items: d.items, Loading: d.loading, Cursor: cursor}.View())
	b.WriteString(panelStyle.Render(strings.TrimRight(list.String(), "\n")) + "\n\n")

	b.WriteString(mutedStyle.Render(d.help()))
	return b.String()
}

func (d *Dashboard) help() string {
	if d.focus == focusForm {
		return "tab next field/list | enter add | esc dismiss error | ctrl+c quit"
	}
	if item := d.selected(); item != nil {
		switch {
		case item.Editing():
			return "tab switch field | enter save | esc cancel"
		case item.ConfirmingDelete():
			return "y delete | n cancel"
		}
	}
	return "j/k move | space toggle | e edit | d delete | r reload | tab form | L logout | q quit"
}

// totalLabel renders "N total task(s)".
func totalLabel(n int) string {
	if n == 1 {
		return "1 total task"
	}
	return fmt.Sprintf("%d total tasks", n)
}

// selected returns the item under the cursor in display order.
func (d *Dashboard) selected() *TaskItem {
	order := TaskList{Items: d.items}.Order()
	if d.cursor < 0 || d.cursor >= len(order) {
		return nil
	}
	return &d.items[order[d.cursor]]
}

func (d *Dashboard) indexOf(id string) int {
	for i := range d.items {
		if d.items[i].Task.ID == id {
			return i
		}
	}
	return -1
}

func (d *Dashboard) clampCursor() {
	if d.cursor >= len(d.items) {
		d.cursor = len(d.items) - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (d *Dashboard) fail(err error, fallback string) {
	d.errText = client.ErrorMessage(err, fallback)
}

func (d *Dashboard) itemActions() ItemActions {
	return ItemActions{Update: d.updateTask, Delete: d.deleteTask}
}

func (d *Dashboard) fetchTasks() tea.Cmd {
	ctx, sess := d.ctx, d.session
	return func() tea.Msg {
		tasks, err := sess.ListTasks(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (d *Dashboard) createTask(v FormValues) tea.Cmd {
	ctx, sess := d.ctx, d.session
	return func() tea.Msg {
		task, err := sess.CreateTask(ctx, client.TaskInput{Title: v.Title, Description: v.Description})
		return taskCreatedMsg{task: task, err: err}
	}
}

func (d *Dashboard) updateTask(id string, patch models.TaskPatch) tea.Cmd {
	ctx, sess := d.ctx, d.session
	return func() tea.Msg {
		task, err := sess.UpdateTask(ctx, id, patch)
		return taskUpdatedMsg{id: id, task: task, err: err}
	}
}

func (d *Dashboard) deleteTask(id string) tea.Cmd {
	ctx, sess := d.ctx, d.session
	return func() tea.Msg {
		err := sess.DeleteTask(ctx, id)
		return taskDeletedMsg{id: id, err: err}
	}
}
