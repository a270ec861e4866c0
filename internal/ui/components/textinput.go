package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the app's styling and an inline
// status mark once submitted.
type TextInput struct {
	Model     textinput.Model
	submitted bool
	ok        bool
	status    string
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder, initial string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(initial)
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.ok {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓ "+t.status)
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.status)
		}
	}
	return view
}

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Submit marks the input as submitted with a result and a short status.
func (t *TextInput) Submit(ok bool, status string) {
	t.submitted = true
	t.ok = ok
	t.status = status
}
