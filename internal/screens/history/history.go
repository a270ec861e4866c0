package history

import (
	"context"
	"fmt"
	"os"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	hist "github.com/abhisek/quizbank/internal/history"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/review"
	"github.com/abhisek/quizbank/internal/screen"
	"github.com/abhisek/quizbank/internal/ui/components"
	"github.com/abhisek/quizbank/internal/ui/keys"
	"github.com/abhisek/quizbank/internal/ui/layout"
)

// DefaultExportPath is offered when exporting from the TUI.
const DefaultExportPath = "quizbank-history.json"

type historyLoadedMsg struct {
	Entries []hist.Entry
}

type historyClearedMsg struct {
	Err error
}

type historyExportedMsg struct {
	Path  string
	Count int
	Err   error
}

type mode int

const (
	modeList mode = iota
	modeConfirmClear
	modeExport
)

// HistoryScreen plots past accuracy and lists past sessions.
type HistoryScreen struct {
	engine   *quiz.Engine
	entries  []hist.Entry // newest first
	summary  review.Summary
	series   []float64 // oldest first
	selected int
	loaded   bool
	mode     mode
	input    components.TextInput
	notice   string
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.EscapeHandler = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(engine *quiz.Engine) *HistoryScreen {
	return &HistoryScreen{engine: engine}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) load() tea.Cmd {
	return func() tea.Msg {
		return historyLoadedMsg{Entries: s.engine.History(context.Background())}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

// HandlesEscape claims Esc while a prompt is open so it closes the prompt
// rather than the screen.
func (s *HistoryScreen) HandlesEscape() bool {
	return s.mode != modeList
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeConfirmClear:
		return layout.HintsFrom(keys.Yes, keys.No)
	case modeExport:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Export"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return layout.HintsFrom(keys.Up, keys.Down, keys.Export, keys.Clear, keys.Back)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.entries = review.Newest(msg.Entries)
		s.summary = review.Totals(msg.Entries)
		s.series = s.series[:0]
		for _, p := range review.Series(msg.Entries) {
			s.series = append(s.series, p.Accuracy)
		}
		s.selected = max(0, min(s.selected, len(s.entries)-1))
		s.loaded = true
		return s, nil

	case historyClearedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.notice = "History cleared."
		s.selected = 0
		return s, s.load()

	case historyExportedMsg:
		if msg.Err != nil {
			s.input.Submit(false, msg.Err.Error())
			return s, nil
		}
		s.mode = modeList
		s.notice = fmt.Sprintf("Exported %d entries to %s", msg.Count, msg.Path)
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.mode == modeExport {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch s.mode {
	case modeConfirmClear:
		switch {
		case key.Matches(msg, keys.Yes):
			s.mode = modeList
			return s, s.clear()
		case key.Matches(msg, keys.No):
			s.mode = modeList
		}
		return s, nil

	case modeExport:
		switch {
		case key.Matches(msg, keys.Back):
			s.mode = modeList
			return s, nil
		case key.Matches(msg, keys.Enter):
			path := s.input.Value()
			if path == "" {
				s.input.Submit(false, "path required")
				return s, nil
			}
			return s, s.export(path)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	s.notice, s.errMsg = "", ""
	switch {
	case key.Matches(msg, keys.Up):
		if s.selected > 0 {
			s.selected--
		}
	case key.Matches(msg, keys.Down):
		if s.selected < len(s.entries)-1 {
			s.selected++
		}
	case key.Matches(msg, keys.Clear):
		if len(s.entries) > 0 {
			s.mode = modeConfirmClear
		}
	case key.Matches(msg, keys.Export):
		s.mode = modeExport
		s.input = components.NewTextInput("file.json", DefaultExportPath, 256)
		return s, s.input.Init()
	}
	return s, nil
}

func (s *HistoryScreen) clear() tea.Cmd {
	return func() tea.Msg {
		return historyClearedMsg{Err: s.engine.ClearHistory(context.Background())}
	}
}

func (s *HistoryScreen) export(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return historyExportedMsg{Path: path, Err: err}
		}
		n, err := s.engine.ExportHistory(context.Background(), f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return historyExportedMsg{Path: path, Count: n, Err: err}
	}
}
