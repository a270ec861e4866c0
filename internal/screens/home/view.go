package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/history"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

const titleFull = `╔═╗ ╦ ╦ ╦ ╔═╗ ╔╗  ╔═╗ ╔╗╔ ╦╔═
║═╬╗║ ║ ║ ╔═╝ ╠╩╗ ╠═╣ ║║║ ╠╩╗
╚═╝╚╚═╝ ╩ ╚═╝ ╚═╝ ╩ ╩ ╝╚╝ ╩ ╩`

const titleCompact = "Q · U · I · Z · B · A · N · K"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderTitle returns the styled title block or the compact fallback.
func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art))
}

// renderBankBar shows what the bank holds in a bordered box.
func renderBankBar(title string, subjects, questions, cw int) string {
	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title)
	counts := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d subjects · %d questions", subjects, questions))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(name + "\n" + counts)
}

// renderLastResult summarizes the most recent ledger entry.
func renderLastResult(last *history.Entry, sessions, cw int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var text string
	if last == nil {
		text = dim.Render("No quizzes taken yet")
	} else {
		score := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("%d/%d", last.Score, last.Total))
		text = fmt.Sprintf("%s %s %s",
			dim.Render("Last quiz"),
			score,
			dim.Render(fmt.Sprintf("(%s%%) · %d taken", last.AccuracyText(), sessions)),
		)
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(text)
}

func renderNotice(notice string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + notice)
}

// renderMenu renders each menu item as a fixed-width button, or as plain
// lines when the terminal is too short for borders.
func renderMenu(items []string, selected, cw int, compact bool) string {
	active := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary)
	normal := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text)
	if !compact {
		active = active.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Primary)
		normal = normal.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border)
	}

	buttons := make([]string, 0, len(items))
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, active.Render("▸ "+label))
		} else {
			buttons = append(buttons, normal.Render(label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderFrame centers content in a double-border frame.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
