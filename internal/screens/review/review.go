// Package review shows the result of a finished quiz with the answers
// grouped by outcome.
package review

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/grading"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/router"
	"github.com/abhisek/quizbank/internal/screen"
	historyscreen "github.com/abhisek/quizbank/internal/screens/history"
	"github.com/abhisek/quizbank/internal/ui/components"
	"github.com/abhisek/quizbank/internal/ui/keys"
	"github.com/abhisek/quizbank/internal/ui/layout"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

var tabs = []grading.Outcome{grading.OutcomeCorrect, grading.OutcomeWrong, grading.OutcomeSkipped}

var tabLabels = map[grading.Outcome]string{
	grading.OutcomeCorrect: "Correct",
	grading.OutcomeWrong:   "Wrong",
	grading.OutcomeSkipped: "Skipped",
}

// ReviewScreen displays a completed session.
type ReviewScreen struct {
	engine  *quiz.Engine
	warning string
	tab     int
	offset  int
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ screen.EscapeHandler = (*ReviewScreen)(nil)

// New creates the review screen. warning is shown above the result when
// the session could not be recorded.
func New(engine *quiz.Engine, warning string) *ReviewScreen {
	s := &ReviewScreen{engine: engine, warning: warning}
	// Open on the first bucket that has something in it.
	b := engine.Review()
	for i, o := range tabs {
		if len(b.Bucket(o)) > 0 {
			s.tab = i
			break
		}
	}
	return s
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Results"
}

// HandlesEscape lets Esc discard the session before leaving.
func (s *ReviewScreen) HandlesEscape() bool {
	return true
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→/1-3", Description: "Bucket"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "H", Description: "History"},
		{Key: "Enter/Esc", Description: "New quiz"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(kmsg, keys.Enter), key.Matches(kmsg, keys.Back):
		s.engine.ResetToMenu()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case key.Matches(kmsg, keys.History):
		next := historyscreen.New(s.engine)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	case key.Matches(kmsg, keys.Left):
		s.setTab((s.tab + len(tabs) - 1) % len(tabs))
	case key.Matches(kmsg, keys.Right):
		s.setTab((s.tab + 1) % len(tabs))
	case key.Matches(kmsg, keys.Up):
		if s.offset > 0 {
			s.offset--
		}
	case key.Matches(kmsg, keys.Down):
		if s.offset < len(s.records())-1 {
			s.offset++
		}
	default:
		if i, ok := keys.OptionIndex(kmsg.String()); ok && i < len(tabs) {
			s.setTab(i)
		}
	}
	return s, nil
}

func (s *ReviewScreen) setTab(i int) {
	s.tab = i
	s.offset = 0
}

func (s *ReviewScreen) records() []grading.Record {
	return s.engine.Review().Bucket(tabs[s.tab])
}

func (s *ReviewScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	if s.warning != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render("⚠ "+s.warning))
	}
	sections = append(sections, s.renderSummary(cw), s.renderTabs())

	head := strings.Join(sections, "\n")
	listHeight := max(3, height-lipgloss.Height(head)-2)
	sections = append(sections, s.renderList(cw, listHeight))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}

func (s *ReviewScreen) renderSummary(cw int) string {
	entry, ok := s.engine.Result()
	if !ok {
		return theme.Hint.Render("No result.")
	}
	p := s.engine.Progress()

	score := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("%d / %d", entry.Score, entry.Total))
	lines := []string{
		theme.Title.Render("Quiz complete"),
		"",
		fmt.Sprintf("Score %s   Accuracy %s%%", score, entry.AccuracyText()),
		theme.Hint.Render(fmt.Sprintf("%d of %d questions answered · %s",
			p.Answered, p.Total, entry.Duration())),
	}
	return components.Card(lipgloss.JoinVertical(lipgloss.Center, lines...), cw)
}

func (s *ReviewScreen) renderTabs() string {
	b := s.engine.Review()
	parts := make([]string, 0, len(tabs))
	for i, o := range tabs {
		label := fmt.Sprintf("%d %s (%d)", i+1, tabLabels[o], len(b.Bucket(o)))
		if i == s.tab {
			parts = append(parts, theme.ButtonActive.Render(label))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 2).Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// renderList draws records from the scroll offset until height runs out.
func (s *ReviewScreen) renderList(cw, height int) string {
	records := s.records()
	if len(records) == 0 {
		return theme.Hint.Render("\nNothing here.")
	}

	var lines []string
	for i := s.offset; i < len(records); i++ {
		item := renderRecord(records[i], cw)
		if len(lines) > 0 && len(lines)+lipgloss.Height(item) > height {
			break
		}
		lines = append(lines, strings.Split(item, "\n")...)
	}
	return strings.Join(lines, "\n")
}

func renderRecord(r grading.Record, cw int) string {
	q := r.Question
	text := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).
		Render(fmt.Sprintf("Q%d. %s", q.Index+1, q.Text))

	var answer string
	switch r.Outcome() {
	case grading.OutcomeCorrect:
		answer = theme.Correct.Render("✓ " + r.SelectedText())
	case grading.OutcomeWrong:
		answer = theme.Incorrect.Render("✗ "+r.SelectedText()) + "   " +
			theme.Correct.Render("✓ "+q.CorrectAnswer)
	default:
		answer = theme.Skipped.Render("– skipped") + "   " +
			theme.Correct.Render("✓ "+q.CorrectAnswer)
	}
	return "\n" + text + "\n  " + answer
}
