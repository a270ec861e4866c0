// Package selection is the subject and week picker shown before a quiz.
package selection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/router"
	"github.com/abhisek/quizbank/internal/screen"
	quizscreen "github.com/abhisek/quizbank/internal/screens/quiz"
	"github.com/abhisek/quizbank/internal/ui/keys"
	"github.com/abhisek/quizbank/internal/ui/layout"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

// row is one line of the week tree: a year heading or a week under it.
type row struct {
	year   int
	week   int
	isYear bool
}

// SelectionScreen lets the user pick a subject and the weeks to draw from.
type SelectionScreen struct {
	engine *quiz.Engine
	rows   []row
	cursor int
	errMsg string
}

var _ screen.Screen = (*SelectionScreen)(nil)
var _ screen.KeyHintProvider = (*SelectionScreen)(nil)
var _ screen.StatusProvider = (*SelectionScreen)(nil)

// New creates the selection screen.
func New(engine *quiz.Engine) *SelectionScreen {
	s := &SelectionScreen{engine: engine}
	s.rebuild()
	return s
}

func (s *SelectionScreen) Init() tea.Cmd {
	return nil
}

func (s *SelectionScreen) Title() string {
	return "Choose Weeks"
}

func (s *SelectionScreen) Status() string {
	v := s.engine.Selection()
	return fmt.Sprintf("%d weeks · %d questions", len(v.Selected), v.Matches)
}

func (s *SelectionScreen) KeyHints() []layout.KeyHint {
	return layout.HintsFrom(keys.Left, keys.Right, keys.Toggle, keys.SelectAll, keys.DeselectAll, keys.Start, keys.Back)
}

// rebuild lays out the year and week rows for the active subject.
func (s *SelectionScreen) rebuild() {
	s.rows = s.rows[:0]
	lastYear := -1
	for _, k := range s.engine.Selection().Available {
		if k.Year() != lastYear {
			s.rows = append(s.rows, row{year: k.Year(), isYear: true})
			lastYear = k.Year()
		}
		s.rows = append(s.rows, row{year: k.Year(), week: k.Week()})
	}
	s.cursor = max(0, min(s.cursor, len(s.rows)-1))
}

func (s *SelectionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	s.errMsg = ""

	switch {
	case key.Matches(kmsg, keys.Left):
		s.shiftSubject(-1)
	case key.Matches(kmsg, keys.Right):
		s.shiftSubject(1)
	case key.Matches(kmsg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(kmsg, keys.Down):
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
	case key.Matches(kmsg, keys.Toggle):
		if s.cursor < len(s.rows) {
			r := s.rows[s.cursor]
			if r.isYear {
				s.engine.ToggleYear(r.year)
			} else {
				s.engine.ToggleWeek(r.year, r.week)
			}
		}
	case key.Matches(kmsg, keys.SelectAll):
		s.engine.SelectAllWeeks()
	case key.Matches(kmsg, keys.DeselectAll):
		s.engine.DeselectAllWeeks()
	case key.Matches(kmsg, keys.Start):
		return s.start()
	}
	return s, nil
}

func (s *SelectionScreen) shiftSubject(delta int) {
	subjects := s.engine.Bank().Subjects()
	if len(subjects) < 2 {
		return
	}
	cur := 0
	for i, tag := range subjects {
		if tag == s.engine.Selection().Subject {
			cur = i
			break
		}
	}
	next := (cur + delta + len(subjects)) % len(subjects)
	if err := s.engine.SelectSubject(subjects[next]); err != nil {
		s.errMsg = err.Error()
		return
	}
	s.cursor = 0
	s.rebuild()
}

func (s *SelectionScreen) start() (screen.Screen, tea.Cmd) {
	err := s.engine.StartSession(context.Background())
	switch {
	case errors.Is(err, quiz.ErrEmptySelection):
		s.errMsg = "Select at least one week with questions first."
		return s, nil
	case err != nil:
		s.errMsg = err.Error()
		return s, nil
	}
	next := quizscreen.New(s.engine)
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *SelectionScreen) View(width, height int) string {
	v := s.engine.Selection()
	cw := min(width-4, 72)

	var b strings.Builder
	b.WriteString(s.renderTabs(v.Subject))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n")

	// Tabs, rule, blank line and the summary block take six lines.
	listHeight := max(3, height-6)
	if len(s.rows) == 0 {
		b.WriteString(theme.Hint.Render("  No weeks available for this subject."))
		b.WriteString("\n")
	}
	start, end := window(len(s.rows), s.cursor, listHeight)
	for i := start; i < end; i++ {
		b.WriteString(s.renderRow(v, i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	summary := fmt.Sprintf("  %d of %d weeks selected · %d questions", len(v.Selected), len(v.Available), v.Matches)
	b.WriteString(theme.Body.Render(summary))
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + s.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func (s *SelectionScreen) renderTabs(active string) string {
	var tabs []string
	for _, tag := range s.engine.Bank().Subjects() {
		if tag == active {
			tabs = append(tabs, theme.ButtonActive.Render(tag))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 2).Render(tag))
		}
	}
	return strings.Join(tabs, " ")
}

func (s *SelectionScreen) renderRow(v quiz.SelectionView, i int) string {
	r := s.rows[i]
	cursor := "  "
	if i == s.cursor {
		cursor = "▸ "
	}

	var line string
	if r.isYear {
		line = fmt.Sprintf("%s%s %d", cursor, yearMark(v, r.year), r.year)
	} else {
		k := bank.MakeWeekKey(r.year, r.week)
		mark := "[ ]"
		if v.IsSelected(k) {
			mark = "[x]"
		}
		n := s.engine.Bank().CountFor(v.Subject, k)
		line = fmt.Sprintf("%s    %s Week %02d  %s", cursor, mark, r.week,
			theme.Hint.Render(fmt.Sprintf("(%d)", n)))
	}

	switch {
	case i == s.cursor:
		return theme.Selected.Render(line)
	case r.isYear:
		return theme.Body.Bold(true).Render(line)
	default:
		return theme.Unselected.Render(line)
	}
}

// yearMark is [x] when every week of year is selected and [-] when some are.
func yearMark(v quiz.SelectionView, year int) string {
	total, picked := 0, 0
	for _, k := range v.Available {
		if k.Year() != year {
			continue
		}
		total++
		if v.IsSelected(k) {
			picked++
		}
	}
	switch {
	case picked == 0:
		return "[ ]"
	case picked == total:
		return "[x]"
	default:
		return "[-]"
	}
}

// window returns the [start, end) slice of n rows to draw so that cursor
// stays visible in a viewport of size rows.
func window(n, cursor, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	start := max(0, cursor-size/2)
	end := start + size
	if end > n {
		end = n
		start = n - size
	}
	return start, end
}
