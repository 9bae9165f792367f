package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// newInput returns a single-line input capped at limit characters
// (0 = no cap). The cursor does not blink so the view only changes on input.
func newInput(label string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = label + ": "
	in.CharLimit = limit
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func newPasswordInput(label string) textinput.Model {
	in := newInput(label, 0)
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	return in
}

// updateInput focuses in and feeds it msg. The input's own commands are
// dropped; with a static cursor there is nothing to schedule.
func updateInput(in *textinput.Model, msg tea.KeyMsg) {
	in.Focus()
	*in, _ = in.Update(msg)
}

func inputView(in textinput.Model, focused bool) string {
	if !focused {
		in.Blur()
		return "  " + in.View()
	}
	in.Focus()
	line := focusStyle.Render("> ") + in.View()
	if in.CharLimit > 0 {
		line += mutedStyle.Render(fmt.Sprintf("  %d/%d", len([]rune(in.Value())), in.CharLimit))
	}
	return line
}
