package quiz

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/ui/components"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.confirming {
		return components.Centered(
			components.Confirm("Submit the quiz now? Remaining questions are not graded.", "Submit", "Keep going", width),
			width, height)
	}

	p := s.engine.Progress()
	if !p.HasQuestion {
		return components.Centered(theme.Hint.Render("No question to show."), width, height)
	}
	q := p.Question
	cw := components.ContentWidth(width)

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("%s · %d week %d", q.Subject, q.Year, q.Week))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d/%d  %s",
			p.Index+1, p.Total,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			p.Score, p.Attempted,
			clock(s.elapsed),
		))
	infoLine := infoLeft
	if pad := cw - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight); pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(p.Index)/float64(max(p.Total, 1)), true, cw).View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Render(s.choice.View()))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// clock formats d as m:ss.
func clock(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
