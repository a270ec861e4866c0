package history

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/ui/components"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

// chartHeight is the number of rows in the accuracy chart.
const chartHeight = 6

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.mode == modeConfirmClear:
		return components.Centered(
			components.Confirm(fmt.Sprintf("Delete all %d history entries?", len(s.entries)), "Clear", "Cancel", width),
			width, height)
	case !s.loaded:
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	if len(s.entries) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(cw).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Take one from the home screen!"))
	} else {
		b.WriteString(s.renderTotals())
		b.WriteString("\n\n")
		b.WriteString(components.BarChart(s.series, cw, chartHeight))
		b.WriteString("\n\n")
		// Totals, chart with axis, gaps and the status line.
		listHeight := max(3, height-chartHeight-8)
		b.WriteString(s.renderList(listHeight))
	}

	b.WriteString("\n")
	switch {
	case s.mode == modeExport:
		b.WriteString("\nExport to: " + s.input.View())
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("\nError: " + s.errMsg))
	case s.notice != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("\n" + s.notice))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func (s *HistoryScreen) renderTotals() string {
	t := s.summary
	accent := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	return fmt.Sprintf("%s %s   %s %s   %s %s",
		dim.Render("Quizzes"), accent.Render(fmt.Sprint(t.Sessions)),
		dim.Render("Mean"), accent.Render(fmt.Sprintf("%.2f%%", t.MeanAccuracy)),
		dim.Render("Best"), accent.Render(fmt.Sprintf("%.2f%%", t.BestAccuracy)),
	)
}

// renderList shows entries newest first, scrolled to keep the cursor visible.
func (s *HistoryScreen) renderList(size int) string {
	start := 0
	if s.selected >= size {
		start = s.selected - size + 1
	}
	end := min(len(s.entries), start+size)

	var lines []string
	for i := start; i < end; i++ {
		e := s.entries[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		mins := e.DurationSecs / 60
		secs := e.DurationSecs % 60
		line := fmt.Sprintf("%s%s  %d:%02d  %d/%d  %s%%",
			prefix, e.Date.Local().Format("Jan 02, 2006 15:04"), mins, secs, e.Score, e.Total, e.AccuracyText())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}
