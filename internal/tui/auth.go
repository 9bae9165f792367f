package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/tasklist/internal/client"
	"github.com/mmynk/tasklist/internal/models"
	"github.com/mmynk/tasklist/internal/session"
)

type authMode int

const (
	authLogin authMode = iota
	authRegister
)

// authResultMsg carries the outcome of a login or registration.
type authResultMsg struct {
	err error
}

// AuthScreen is the login and registration form.
type AuthScreen struct {
	ctx     context.Context
	session *session.Session

	mode       authMode
	name       textinput.Model
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	errText    string
}

func NewAuthScreen(ctx context.Context, sess *session.Session) *AuthScreen {
	return &AuthScreen{
		ctx:      ctx,
		session:  sess,
		name:     newInput("Name", models.MaxNameLength),
		email:    newInput("Email", 0),
		password: newPasswordInput("Password"),
	}
}

// Error returns the message shown under the form, or "".
func (a *AuthScreen) Error() string {
	return a.errText
}

func (a *AuthScreen) fields() []*textinput.Model {
	if a.mode == authRegister {
		return []*textinput.Model{&a.name, &a.email, &a.password}
	}
	return []*textinput.Model{&a.email, &a.password}
}

// SwitchMode toggles between login and registration.
func (a *AuthScreen) SwitchMode() {
	if a.submitting {
		return
	}
	if a.mode == authLogin {
		a.mode = authRegister
	} else {
		a.mode = authLogin
	}
	a.focus = 0
	a.errText = ""
}

// Submit sends the form. Empty fields are rejected locally.
func (a *AuthScreen) Submit() tea.Cmd {
	if a.submitting {
		return nil
	}
	for _, f := range a.fields() {
		if strings.TrimSpace(f.Value()) == "" {
			a.errText = "Please fill in all fields"
			return nil
		}
	}

	a.submitting = true
	a.errText = ""
	ctx, sess := a.ctx, a.session
	name, email, password := a.name.Value(), a.email.Value(), a.password.Value()

	if a.mode == authRegister {
		return func() tea.Msg {
			return authResultMsg{err: sess.Register(ctx, name, email, password)}
		}
	}
	return func() tea.Msg {
		return authResultMsg{err: sess.Login(ctx, email, password)}
	}
}

func (a *AuthScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case authResultMsg:
		a.submitting = false
		if msg.err != nil {
			fallback := "Login failed"
			if a.mode == authRegister {
				fallback = "Registration failed"
			}
			a.errText = client.ErrorMessage(msg.err, fallback)
			a.password.Reset()
		}
	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return nil
}

func (a *AuthScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.submitting {
		return nil
	}
	fields := a.fields()
	switch msg.Type {
	case tea.KeyEnter:
		if a.focus < len(fields)-1 {
			a.focus++
			return nil
		}
		return a.Submit()
	case tea.KeyTab, tea.KeyDown:
		a.focus = (a.focus + 1) % len(fields)
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		a.focus = (a.focus + len(fields) - 1) % len(fields)
		return nil
	case tea.KeyCtrlR:
		a.SwitchMode()
		return nil
	}
	updateInput(fields[a.focus], msg)
	return nil
}

func (a *AuthScreen) View() string {
	var b strings.Builder

	heading := "Sign in to your account"
	other := "ctrl+r create an account"
	if a.mode == authRegister {
		heading = "Create your account"
		other = "ctrl+r sign in instead"
	}
	b.WriteString(titleStyle.Render("Task Manager") + "\n\n")
	b.WriteString(headerStyle.Render(heading) + "\n\n")

	for i, f := range a.fields() {
		b.WriteString(inputView(*f, i == a.focus) + "\n")
	}
	b.WriteString("\n")

	if a.submitting {
		b.WriteString(mutedStyle.Render("  Please wait...") + "\n")
	}
	if a.errText != "" {
		b.WriteString(errorStyle.Render(a.errText) + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render("tab next field | enter submit | "+other+" | ctrl+c quit"))
	return b.String()
}
