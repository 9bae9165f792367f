// Package tui is the terminal client: a login screen and a task dashboard
// built on bubbletea.
package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/tasklist/internal/session"
)

type screen int

const (
	screenRestoring screen = iota
	screenAuth
	screenDashboard
)

type restoredMsg struct {
	ok bool
}

// App switches between the auth screen and the dashboard as the session
// changes.
type App struct {
	ctx     context.Context
	session *session.Session
	logger  *slog.Logger

	screen    screen
	auth      *AuthScreen
	dashboard *Dashboard
}

func NewApp(ctx context.Context, sess *session.Session, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		ctx:     ctx,
		session: sess,
		logger:  logger,
		screen:  screenRestoring,
	}
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, sess *session.Session, logger *slog.Logger) error {
	program := tea.NewProgram(NewApp(ctx, sess, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Init restores a stored session, if any.
func (a *App) Init() tea.Cmd {
	ctx, sess := a.ctx, a.session
	return func() tea.Msg {
		return restoredMsg{ok: sess.Restore(ctx)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	switch msg := msg.(type) {
	case restoredMsg:
		if msg.ok {
			return a, a.showDashboard()
		}
		a.showAuth()
		return a, nil

	case authResultMsg:
		if msg.err == nil && a.session.SignedIn() {
			return a, a.showDashboard()
		}

	case logoutMsg:
		if err := a.session.Logout(); err != nil {
			a.logger.Warn("clearing token on logout", "error", err)
		}
		a.showAuth()
		return a, nil
	}

	switch a.screen {
	case screenAuth:
		return a, a.auth.Update(msg)
	case screenDashboard:
		return a, a.dashboard.Update(msg)
	}
	return a, nil
}

func (a *App) View() string {
	switch a.screen {
	case screenAuth:
		return a.auth.View()
	case screenDashboard:
		return a.dashboard.View()
	}
	return titleStyle.Render("Task Manager") + "\n\n" + mutedStyle.Render("Loading...")
}

func (a *App) showAuth() {
	a.screen = screenAuth
	a.auth = NewAuthScreen(a.ctx, a.session)
	a.dashboard = nil
}

func (a *App) showDashboard() tea.Cmd {
	a.screen = screenDashboard
	a.auth = nil
	a.dashboard = NewDashboard(a.ctx, a.session)
	return a.dashboard.Init()
}
