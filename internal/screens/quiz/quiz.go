// Package quiz is the screen that serves one question at a time.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	core "github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/router"
	"github.com/abhisek/quizbank/internal/screen"
	historyscreen "github.com/abhisek/quizbank/internal/screens/history"
	"github.com/abhisek/quizbank/internal/screens/review"
	"github.com/abhisek/quizbank/internal/session"
	"github.com/abhisek/quizbank/internal/ui/components"
	"github.com/abhisek/quizbank/internal/ui/keys"
	"github.com/abhisek/quizbank/internal/ui/layout"
)

// timerTickMsg is sent every second to refresh the elapsed time.
type timerTickMsg time.Time

// QuizScreen runs an in-progress session.
type QuizScreen struct {
	engine     *core.Engine
	choice     components.MultiChoice
	elapsed    time.Duration
	confirming bool
	errMsg     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)
var _ screen.Resumer = (*QuizScreen)(nil)

// New creates the quiz screen over the engine's running session.
func New(engine *core.Engine) *QuizScreen {
	s := &QuizScreen{engine: engine}
	s.loadQuestion()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return tickCmd()
}

// Resume restarts the clock after the history screen is closed.
func (s *QuizScreen) Resume() tea.Cmd {
	if s.engine.Progress().Terminal {
		return nil
	}
	return tickCmd()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// HandlesEscape keeps Esc from leaving a running quiz; it opens the
// submit confirmation instead.
func (s *QuizScreen) HandlesEscape() bool {
	return true
}

func (s *QuizScreen) Status() string {
	p := s.engine.Progress()
	return fmt.Sprintf("Score %d/%d · Q %d/%d", p.Score, p.Attempted, min(p.Index+1, p.Total), p.Total)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return layout.HintsFrom(keys.Yes, keys.No)
	}
	return []layout.KeyHint{
		{Key: "1-9", Description: "Answer"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Answer"},
		{Key: "S", Description: "Skip"},
		{Key: "H", Description: "History"},
		{Key: "X/Esc", Description: "Submit quiz"},
	}
}

// loadQuestion resets the option picker for the current question.
func (s *QuizScreen) loadQuestion() {
	p := s.engine.Progress()
	if !p.HasQuestion {
		return
	}
	s.choice = components.NewMultiChoice(p.Question.Text, p.Question.Options)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		p := s.engine.Progress()
		if p.Terminal {
			return s, nil
		}
		s.elapsed = p.Elapsed
		return s, tickCmd()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	ctx := context.Background()

	// Keys arriving before the review screen takes over are dropped.
	if s.engine.Progress().Terminal {
		return s, nil
	}

	if s.confirming {
		switch {
		case key.Matches(msg, keys.Yes):
			s.confirming = false
			return s.after(s.engine.SubmitQuiz(ctx))
		case key.Matches(msg, keys.No):
			s.confirming = false
		}
		return s, nil
	}

	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Submit):
		s.confirming = true
		return s, nil
	case key.Matches(msg, keys.Skip):
		return s.after(s.engine.SkipQuestion(ctx))
	case key.Matches(msg, keys.History):
		next := historyscreen.New(s.engine)
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: next}
		}
	}

	s.choice, _ = s.choice.Update(msg)
	if opt, ok := s.choice.Choice(); ok {
		return s.after(s.engine.SubmitAnswer(ctx, opt))
	}
	return s, nil
}

// after moves the screen on once the engine has handled an answer, skip or
// submit. A completed session hands over to the review screen.
func (s *QuizScreen) after(err error) (screen.Screen, tea.Cmd) {
	var warning string
	var recErr *session.RecordError
	switch {
	case errors.As(err, &recErr):
		warning = "Result was not saved to history: " + recErr.Err.Error()
	case err != nil:
		s.errMsg = err.Error()
		return s, nil
	}

	if s.engine.Progress().Terminal {
		next := review.New(s.engine, warning)
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}
	}
	s.errMsg = ""
	s.loadQuestion()
	return s, nil
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
