package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/tasklist/internal/client"
	"github.com/mmynk/tasklist/internal/models"
	"github.com/mmynk/tasklist/internal/session"
)

// fakeAPI is an in-memory stand-in for the REST API.
type fakeAPI struct {
	tasks   []models.Task
	nextID  int
	failAll error

	updates []models.TaskPatch
}

func (f *fakeAPI) Register(ctx context.Context, name, email, password string) (*client.AuthResponse, error) {
	return &client.AuthResponse{Token: "tok", User: models.PublicUser{ID: "u1", Name: name, Email: email}}, nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*client.AuthResponse, error) {
	if password != "secret1" {
		return nil, &client.APIError{Status: http.StatusBadRequest, Message: "Invalid email or password"}
	}
	return &client.AuthResponse{Token: "tok", User: models.PublicUser{ID: "u1", Name: "Alice", Email: email}}, nil
}

func (f *fakeAPI) CurrentUser(ctx context.Context, token string) (*models.PublicUser, error) {
	if token != "tok" {
		return nil, &client.APIError{Status: http.StatusUnauthorized, Message: "Token is not valid"}
	}
	return &models.PublicUser{ID: "u1", Name: "Alice", Email: "alice@example.com"}, nil
}

func (f *fakeAPI) ListTasks(ctx context.Context, token string) ([]models.Task, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := make([]models.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, token string, input client.TaskInput) (*models.Task, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	f.nextID++
	now := time.Now()
	t := models.Task{
		ID:          fmt.Sprintf("t%d", f.nextID),
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     "u1",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.tasks = append([]models.Task{t}, f.tasks...)
	return &t, nil
}

func (f *fakeAPI) UpdateTask(ctx context.Context, token, id string, patch models.TaskPatch) (*models.Task, error) {
	f.updates = append(f.updates, patch)
	if f.failAll != nil {
		return nil, f.failAll
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			patch.Apply(&f.tasks[i])
			f.tasks[i].UpdatedAt = f.tasks[i].UpdatedAt.Add(time.Second)
			t := f.tasks[i]
			return &t, nil
		}
	}
	return nil, &client.APIError{Status: http.StatusNotFound, Message: "Task not found"}
}

func (f *fakeAPI) DeleteTask(ctx context.Context, token, id string) (string, error) {
	if f.failAll != nil {
		return "", f.failAll
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return "Task deleted successfully", nil
		}
	}
	return "", &client.APIError{Status: http.StatusNotFound, Message: "Task not found"}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signedInSession(t *testing.T, api *fakeAPI) *session.Session {
	t.Helper()
	sess := session.New(api, session.NewMemoryStore(), discardLogger())
	if err := sess.Login(context.Background(), "alice@example.com", "secret1"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	return sess
}

// run executes cmd and feeds the resulting message back into update,
// following returned commands until none is left.
func run(cmd tea.Cmd, update func(tea.Msg) tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		cmd = update(msg)
	}
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func newLoadedDashboard(t *testing.T, api *fakeAPI) *Dashboard {
	t.Helper()
	d := NewDashboard(context.Background(), signedInSession(t, api))
	run(d.Init(), d.Update)
	if d.Loading() {
		t.Fatal("dashboard still loading after Init")
	}
	return d
}

func TestTaskForm_SubmitRequiresTitle(t *testing.T) {
	var submitted []FormValues
	f := NewTaskForm(func(v FormValues) tea.Cmd {
		submitted = append(submitted, v)
		return func() tea.Msg { return nil }
	})

	f.HandleKey(keys("   "))
	if f.CanSubmit() {
		t.Error("CanSubmit() = true for blank title")
	}
	if cmd := f.HandleKey(key(tea.KeyEnter)); cmd != nil {
		t.Error("blank submit returned a command")
	}

	f.HandleKey(keys("Buy milk "))
	f.HandleKey(key(tea.KeyDown))
	f.HandleKey(keys(" 2 litres "))
	cmd := f.HandleKey(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("submit returned nil command")
	}
	if len(submitted) != 1 || submitted[0] != (FormValues{Title: "Buy milk", Description: "2 litres"}) {
		t.Fatalf("submitted = %+v, want trimmed payload", submitted)
	}

	if !f.Submitting() {
		t.Error("form should be submitting")
	}
	if cmd := f.HandleKey(key(tea.KeyEnter)); cmd != nil {
		t.Error("second submit while in flight returned a command")
	}

	f.Resolve(false)
	if f.Values().Title != "Buy milk" {
		t.Error("failed submit should keep values")
	}

	f.Submit()
	f.Resolve(true)
	if v := f.Values(); v.Title != "" || v.Description != "" {
		t.Errorf("successful submit should clear form, got %+v", v)
	}
}

func TestTaskForm_EditFormKeepsValues(t *testing.T) {
	f := NewEditForm(models.Task{Title: "Old", Description: "desc"}, func(FormValues) tea.Cmd {
		return func() tea.Msg { return nil }
	})
	f.Submit()
	f.Resolve(true)
	if v := f.Values(); v.Title != "Old" || v.Description != "desc" {
		t.Errorf("edit form cleared after success: %+v", v)
	}
}

func TestTaskForm_Limits(t *testing.T) {
	f := NewTaskForm(func(FormValues) tea.Cmd { return nil })
	f.HandleKey(keys(strings.Repeat("a", models.MaxTitleLength+20)))
	if got := len([]rune(f.Values().Title)); got != models.MaxTitleLength {
		t.Errorf("title length = %d, want %d", got, models.MaxTitleLength)
	}
	f.NextField()
	f.HandleKey(keys(strings.Repeat("é", models.MaxDescriptionLength+1)))
	if got := len([]rune(f.Values().Description)); got != models.MaxDescriptionLength {
		t.Errorf("description length = %d, want %d", got, models.MaxDescriptionLength)
	}
}

func TestTaskItem_ToggleSendsOnlyCompleted(t *testing.T) {
	var sent []models.TaskPatch
	item := NewTaskItem(models.Task{ID: "t1", Title: "A"}, ItemActions{
		Update: func(id string, patch models.TaskPatch) tea.Cmd {
			sent = append(sent, patch)
			return func() tea.Msg { return nil }
		},
	})

	if item.HandleKey(keys(" ")) == nil {
		t.Fatal("toggle returned nil command")
	}
	if len(sent) != 1 || sent[0].Completed == nil || !*sent[0].Completed || sent[0].Title != nil || sent[0].Description != nil {
		t.Fatalf("toggle patch = %+v", sent)
	}
	if !item.Busy() {
		t.Error("item should be busy while toggling")
	}
	if item.HandleKey(keys(" ")) != nil || item.HandleKey(keys("e")) != nil {
		t.Error("busy item accepted input")
	}
	if item.Editing() {
		t.Error("busy item entered edit mode")
	}
}

func TestTaskItem_EditCancelRestores(t *testing.T) {
	item := NewTaskItem(models.Task{ID: "t1", Title: "Original", Description: "d"}, ItemActions{
		Update: func(string, models.TaskPatch) tea.Cmd { return func() tea.Msg { return nil } },
	})

	item.HandleKey(keys("e"))
	if !item.Editing() {
		t.Fatal("expected edit mode")
	}
	item.HandleKey(key(tea.KeyCtrlU))
	item.HandleKey(keys("Changed"))
	item.HandleKey(key(tea.KeyEsc))
	if item.Editing() {
		t.Fatal("esc should leave edit mode")
	}

	item.HandleKey(keys("e"))
	if got := item.edit.Values().Title; got != "Original" {
		t.Errorf("reopened editor title = %q, want Original", got)
	}
}

func TestTaskItem_SaveStaysOpenOnFailure(t *testing.T) {
	var sent models.TaskPatch
	item := NewTaskItem(models.Task{ID: "t1", Title: "Original"}, ItemActions{
		Update: func(id string, patch models.TaskPatch) tea.Cmd {
			sent = patch
			return func() tea.Msg { return nil }
		},
	})

	item.StartEdit()
	item.HandleKey(key(tea.KeyCtrlU))
	item.HandleKey(keys(" New title "))
	if item.HandleKey(key(tea.KeyEnter)) == nil {
		t.Fatal("save returned nil command")
	}
	if sent.Title == nil || *sent.Title != "New title" || sent.Description == nil || sent.Completed != nil {
		t.Fatalf("save patch = %+v", sent)
	}

	item.Resolve(nil, &client.APIError{Status: 500, Message: "boom"})
	if !item.Editing() || item.Busy() {
		t.Fatal("failed save should keep editor open and re-enable it")
	}
	if item.edit.Values().Title != "New title" {
		t.Error("failed save should keep typed values")
	}

	item.SaveEdit()
	updated := models.Task{ID: "t1", Title: "New title"}
	item.Resolve(&updated, nil)
	if item.Editing() || item.Task.Title != "New title" {
		t.Errorf("successful save: editing=%v task=%+v", item.Editing(), item.Task)
	}
}

func TestTaskItem_DeleteNeedsConfirmation(t *testing.T) {
	deletes := 0
	item := NewTaskItem(models.Task{ID: "t1", Title: "A"}, ItemActions{
		Delete: func(string) tea.Cmd {
			deletes++
			return func() tea.Msg { return nil }
		},
	})

	item.HandleKey(keys("d"))
	if !item.ConfirmingDelete() || deletes != 0 {
		t.Fatal("d should ask for confirmation without deleting")
	}
	item.HandleKey(keys("n"))
	if item.ConfirmingDelete() {
		t.Fatal("n should cancel")
	}

	item.HandleKey(keys("d"))
	if item.HandleKey(keys("y")) == nil || deletes != 1 {
		t.Fatal("y should delete")
	}
	if !item.Busy() {
		t.Error("item should be busy while deleting")
	}
}

func TestFormatTimes(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	same := formatTimes(models.Task{CreatedAt: created, UpdatedAt: created})
	if strings.Contains(same, "Updated") {
		t.Errorf("formatTimes() = %q, should omit unchanged updated time", same)
	}

	changed := formatTimes(models.Task{CreatedAt: created, UpdatedAt: created.Add(time.Hour)})
	if !strings.Contains(changed, "Created: ") || !strings.Contains(changed, "Updated: ") {
		t.Errorf("formatTimes() = %q", changed)
	}
}

func TestPartition(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Completed: false},
		{ID: "2", Completed: true},
		{ID: "3", Completed: false},
	}
	pending, completed := Partition(tasks)
	if len(pending) != 2 || pending[0].ID != "1" || pending[1].ID != "3" {
		t.Errorf("pending = %+v", pending)
	}
	if len(completed) != 1 || completed[0].ID != "2" {
		t.Errorf("completed = %+v", completed)
	}
}

func TestTaskListView(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		view := TaskList{Loading: true}.View()
		if n := strings.Count(view, "\n"); n != skeletonRows {
			t.Errorf("loading rows = %d, want %d", n, skeletonRows)
		}
	})

	t.Run("empty", func(t *testing.T) {
		view := TaskList{}.View()
		if !strings.Contains(view, "No tasks yet") || !strings.Contains(view, "Get started by creating your first task.") {
			t.Errorf("empty view = %q", view)
		}
	})

	t.Run("groups", func(t *testing.T) {
		items := []TaskItem{
			NewTaskItem(models.Task{ID: "1", Title: "one"}, ItemActions{}),
			NewTaskItem(models.Task{ID: "2", Title: "two"}, ItemActions{}),
		}
		view := TaskList{Items: items}.View()
		if !strings.Contains(view, "Pending Tasks (2)") {
			t.Errorf("missing pending header: %q", view)
		}
		if strings.Contains(view, "Completed Tasks") {
			t.Errorf("empty completed group rendered: %q", view)
		}

		items[1].Task.Completed = true
		view = TaskList{Items: items}.View()
		if !strings.Contains(view, "Pending Tasks (1)") || !strings.Contains(view, "Completed Tasks (1)") {
			t.Errorf("headers wrong: %q", view)
		}
	})
}

func TestTotalLabel(t *testing.T) {
	tests := map[int]string{0: "0 total tasks", 1: "1 total task", 2: "2 total tasks"}
	for n, want := range tests {
		if got := totalLabel(n); got != want {
			t.Errorf("totalLabel(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestDashboard_Lifecycle(t *testing.T) {
	api := &fakeAPI{}
	d := newLoadedDashboard(t, api)
	if len(d.Tasks()) != 0 {
		t.Fatalf("Tasks() = %v, want empty", d.Tasks())
	}

	for _, title := range []string{"first", "second"} {
		d.form.HandleKey(keys(title))
		run(d.form.HandleKey(key(tea.KeyEnter)), d.Update)
	}
	tasks := d.Tasks()
	if len(tasks) != 2 || tasks[0].Title != "second" || tasks[1].Title != "first" {
		t.Fatalf("Tasks() = %+v, want newest first", tasks)
	}
	if d.form.Values().Title != "" {
		t.Error("form should clear after create")
	}

	// Move to the list and toggle the first pending task ("second").
	d.handleKey(key(tea.KeyTab))
	d.handleKey(key(tea.KeyTab))
	if d.focus != focusList {
		t.Fatal("expected list focus")
	}
	run(d.handleKey(keys(" ")), d.Update)

	if !d.Tasks()[0].Completed {
		t.Fatalf("task not completed after toggle: %+v", d.Tasks()[0])
	}
	if last := api.updates[len(api.updates)-1]; last.Title != nil || last.Completed == nil {
		t.Errorf("toggle patch = %+v", last)
	}
	if !strings.Contains(d.View(), "Completed Tasks (1)") {
		t.Error("view should show completed group")
	}

	// The cursor still points at the first pending row ("first").
	d.handleKey(keys("d"))
	run(d.handleKey(keys("y")), d.Update)
	tasks = d.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "second" {
		t.Fatalf("Tasks() after delete = %+v", tasks)
	}
}

func TestDashboard_ErrorBanner(t *testing.T) {
	api := &fakeAPI{}
	d := newLoadedDashboard(t, api)

	api.failAll = &client.APIError{Status: http.StatusInternalServerError}
	d.form.HandleKey(keys("task"))
	run(d.form.HandleKey(key(tea.KeyEnter)), d.Update)
	if d.Error() != "Failed to create task" {
		t.Errorf("Error() = %q, want fallback", d.Error())
	}
	if d.form.Values().Title != "task" {
		t.Error("failed create should keep form values")
	}

	api.failAll = &client.APIError{Status: http.StatusBadRequest, Message: "Title cannot exceed 100 characters"}
	run(d.form.Submit(), d.Update)
	if d.Error() != "Title cannot exceed 100 characters" {
		t.Errorf("Error() = %q, want server message", d.Error())
	}

	d.handleKey(key(tea.KeyEsc))
	if d.Error() != "" {
		t.Error("esc should dismiss the banner")
	}

	api.failAll = fmt.Errorf("%w: dial tcp", client.ErrNetwork)
	run(d.form.Submit(), d.Update)
	if d.Error() != client.NetworkErrorMessage {
		t.Errorf("Error() = %q, want network message", d.Error())
	}

	api.failAll = nil
	run(d.form.Submit(), d.Update)
	if d.Error() != "" {
		t.Errorf("success should clear banner, got %q", d.Error())
	}
}

func TestDashboard_FetchFailure(t *testing.T) {
	api := &fakeAPI{failAll: &client.APIError{Status: http.StatusInternalServerError, Message: "Server error while fetching tasks"}}
	d := NewDashboard(context.Background(), signedInSession(t, api))
	run(d.Init(), d.Update)
	if d.Loading() {
		t.Error("loading should end on failure")
	}
	if d.Error() != "Server error while fetching tasks" {
		t.Errorf("Error() = %q", d.Error())
	}
}

func TestApp_RestoreAndLogout(t *testing.T) {
	api := &fakeAPI{tasks: []models.Task{{ID: "t1", Title: "existing"}}}
	tokens := session.NewMemoryStore()
	tokens.Set("tok")
	sess := session.New(api, tokens, discardLogger())

	app := NewApp(context.Background(), sess, discardLogger())
	update := func(msg tea.Msg) tea.Cmd {
		_, cmd := app.Update(msg)
		return cmd
	}
	run(app.Init(), update)

	if app.screen != screenDashboard {
		t.Fatalf("screen = %v, want dashboard", app.screen)
	}
	if got := app.dashboard.Tasks(); len(got) != 1 {
		t.Fatalf("dashboard tasks = %+v", got)
	}

	app.dashboard.focus = focusList
	run(app.dashboard.handleKey(keys("L")), update)
	if app.screen != screenAuth || sess.SignedIn() {
		t.Fatal("logout should return to auth screen and clear session")
	}
	if tok, _ := tokens.Get(); tok != "" {
		t.Errorf("token after logout = %q", tok)
	}
}

func TestApp_InvalidStoredTokenShowsAuthQuietly(t *testing.T) {
	tokens := session.NewMemoryStore()
	tokens.Set("stale")
	sess := session.New(&fakeAPI{}, tokens, discardLogger())

	app := NewApp(context.Background(), sess, discardLogger())
	run(app.Init(), func(msg tea.Msg) tea.Cmd {
		_, cmd := app.Update(msg)
		return cmd
	})

	if app.screen != screenAuth {
		t.Fatalf("screen = %v, want auth", app.screen)
	}
	if app.auth.Error() != "" {
		t.Errorf("auth error = %q, want none", app.auth.Error())
	}
}

func TestAuthScreen_LoginFlow(t *testing.T) {
	sess := session.New(&fakeAPI{}, session.NewMemoryStore(), discardLogger())
	app := NewApp(context.Background(), sess, discardLogger())
	update := func(msg tea.Msg) tea.Cmd {
		_, cmd := app.Update(msg)
		return cmd
	}
	run(app.Init(), update)

	a := app.auth
	run(a.handleKey(key(tea.KeyEnter)), update)
	run(a.handleKey(key(tea.KeyEnter)), update)
	if a.Error() != "Please fill in all fields" {
		t.Fatalf("Error() = %q", a.Error())
	}

	a.focus = 0
	a.handleKey(keys("alice@example.com"))
	a.handleKey(key(tea.KeyTab))
	a.handleKey(keys("wrong"))
	run(a.handleKey(key(tea.KeyEnter)), update)
	if a.Error() != "Invalid email or password" {
		t.Fatalf("Error() = %q", a.Error())
	}
	if app.screen != screenAuth {
		t.Fatal("failed login left the auth screen")
	}

	a.handleKey(keys("secret1"))
	run(a.handleKey(key(tea.KeyEnter)), update)
	if app.screen != screenDashboard {
		t.Fatalf("screen = %v, want dashboard", app.screen)
	}
	if u := sess.User(); u == nil || u.Email != "alice@example.com" {
		t.Errorf("User() = %+v", u)
	}
}

func TestAuthScreen_SwitchMode(t *testing.T) {
	a := NewAuthScreen(context.Background(), session.New(&fakeAPI{}, session.NewMemoryStore(), discardLogger()))
	if len(a.fields()) != 2 {
		t.Fatalf("login fields = %d, want 2", len(a.fields()))
	}
	a.handleKey(key(tea.KeyCtrlR))
	if a.mode != authRegister || len(a.fields()) != 3 {
		t.Fatalf("register mode fields = %d", len(a.fields()))
	}
	if !strings.Contains(a.View(), "Create your account") {
		t.Error("register view missing heading")
	}
}

func TestAuthScreen_PasswordMasked(t *testing.T) {
	a := NewAuthScreen(context.Background(), session.New(&fakeAPI{}, session.NewMemoryStore(), discardLogger()))
	a.handleKey(keys("alice@example.com"))
	a.handleKey(key(tea.KeyTab))
	a.handleKey(keys("hunter22"))

	if a.password.Value() != "hunter22" {
		t.Fatalf("password value = %q", a.password.Value())
	}
	view := a.View()
	if strings.Contains(view, "hunter22") {
		t.Error("view shows the password in clear text")
	}
	if !strings.Contains(view, "alice@example.com") {
		t.Error("view missing the email")
	}
}
