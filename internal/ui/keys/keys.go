// Package keys holds the key bindings shared by the screens.
package keys

import "charm.land/bubbles/v2/key"

var (
	Up = key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "Up"),
	)
	Down = key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "Down"),
	)
	Left = key.NewBinding(
		key.WithKeys("left", "shift+tab"),
		key.WithHelp("←", "Prev"),
	)
	Right = key.NewBinding(
		key.WithKeys("right", "tab"),
		key.WithHelp("→", "Next"),
	)
	Enter = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Select"),
	)
	Back = key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "Back"),
	)
	Quit = key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+C", "Quit"),
	)
	Theme = key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("Ctrl+T", "Theme"),
	)
	Yes = key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("Y", "Yes"),
	)
	No = key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("N", "No"),
	)
)

// Selection screen.
var (
	Toggle = key.NewBinding(
		key.WithKeys("space"),
		key.WithHelp("Space", "Toggle"),
	)
	SelectAll = key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("A", "All"),
	)
	DeselectAll = key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("D", "None"),
	)
	Start = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Start"),
	)
)

// Quiz, review and history screens.
var (
	Skip = key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("S", "Skip"),
	)
	Submit = key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("X", "Submit quiz"),
	)
	History = key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("H", "History"),
	)
	Clear = key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("C", "Clear"),
	)
	Export = key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("E", "Export"),
	)
)

// OptionIndex maps a pressed digit to a 0-based option index.
func OptionIndex(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}
