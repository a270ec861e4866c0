package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/ui/keys"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. It only reports the pick;
// grading happens elsewhere.
type MultiChoice struct {
	Question    string
	Options     []string
	Selected    int
	ChosenIndex int // -1 until an option is picked
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:    question,
		Options:     options,
		ChosenIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles arrows + Enter and direct picks with number keys 1-9.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Chosen() {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(kmsg, keys.Down):
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case key.Matches(kmsg, keys.Enter):
		if len(m.Options) > 0 {
			m.ChosenIndex = m.Selected
		}
	default:
		if i, ok := keys.OptionIndex(kmsg.String()); ok && i < len(m.Options) {
			m.Selected = i
			m.ChosenIndex = i
		}
	}

	return m, nil
}

// Chosen reports whether an option has been picked.
func (m MultiChoice) Chosen() bool {
	return m.ChosenIndex >= 0
}

// Choice returns the picked option text.
func (m MultiChoice) Choice() (string, bool) {
	if !m.Chosen() {
		return "", false
	}
	return m.Options[m.ChosenIndex], true
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	var b strings.Builder
	b.WriteString(questionStyle.Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		if i == m.Selected {
			b.WriteString(theme.Selected.Render(line))
		} else {
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
