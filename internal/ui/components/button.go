package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/ui/theme"
)

// Button is a styled button.
type Button struct {
	Label  string
	Active bool
}

// NewButton creates a new button.
func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// Confirm renders a yes/no prompt with the question above two buttons.
// The affirmative button is highlighted.
func Confirm(question, yes, no string, width int) string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		NewButton("[Y] "+yes, true).View(),
		"   ",
		NewButton("[N] "+no, false).View(),
	)
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Body.Bold(true).Render(question),
		"",
		buttons,
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Render(body))
}
