package quiz

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	core "github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/quiz/quiztest"
	"github.com/abhisek/quizbank/internal/router"
	historyscreen "github.com/abhisek/quizbank/internal/screens/history"
	"github.com/abhisek/quizbank/internal/screens/review"
	"github.com/abhisek/quizbank/internal/session"
)

func startedScreen(t *testing.T) (*QuizScreen, *core.Engine) {
	t.Helper()
	e, _ := quiztest.NewEngine(t)
	e.SelectAllWeeks()
	if err := e.StartSession(context.Background()); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	return New(e), e
}

func replacedWithReview(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := msg.Screen.(*review.ReviewScreen); !ok {
		t.Errorf("replaced with %T", msg.Screen)
	}
}

func TestQuizScreen_AnswerSkipAndFinish(t *testing.T) {
	s, e := startedScreen(t)
	if got := s.Status(); got != "Score 0/0 · Q 1/3" {
		t.Errorf("Status = %q", got)
	}

	s.Update(quiztest.Key('2'))
	if p := e.Progress(); p.Score != 1 || p.Attempted != 1 || p.Index != 1 {
		t.Fatalf("after correct answer: %+v", p)
	}
	if s.choice.Chosen() {
		t.Error("picker not reset for the next question")
	}

	s.Update(quiztest.Key('s'))
	if p := e.Progress(); p.Attempted != 1 || p.Index != 2 {
		t.Fatalf("after skip: %+v", p)
	}

	_, cmd := s.Update(quiztest.Key('1'))
	replacedWithReview(t, cmd)

	res, ok := e.Result()
	if !ok || res.Score != 1 || res.Total != 2 {
		t.Errorf("result = %+v, %v", res, ok)
	}
}

func TestQuizScreen_ArrowsAndEnter(t *testing.T) {
	s, e := startedScreen(t)

	s.Update(quiztest.Special(tea.KeyDown))
	s.Update(quiztest.Special(tea.KeyEnter))

	if p := e.Progress(); p.Score != 1 {
		t.Errorf("Score = %d, want 1", p.Score)
	}
}

func TestQuizScreen_SubmitConfirm(t *testing.T) {
	s, e := startedScreen(t)
	if !s.HandlesEscape() {
		t.Fatal("quiz screen must own Esc")
	}

	s.Update(quiztest.Special(tea.KeyEscape))
	if !s.confirming {
		t.Fatal("Esc should open the submit confirmation")
	}
	if !strings.Contains(s.View(80, 20), "Submit the quiz now?") {
		t.Error("confirmation not rendered")
	}

	s.Update(quiztest.Key('n'))
	if s.confirming || e.Progress().Terminal {
		t.Fatal("N should return to the quiz")
	}

	s.Update(quiztest.Key('x'))
	_, cmd := s.Update(quiztest.Key('y'))
	replacedWithReview(t, cmd)

	if p := e.Progress(); p.State != session.StateCompleted || p.Attempted != 0 {
		t.Errorf("progress = %+v", p)
	}
}

func TestQuizScreen_IgnoresOtherKeysWhileConfirming(t *testing.T) {
	s, e := startedScreen(t)
	s.Update(quiztest.Key('x'))
	s.Update(quiztest.Key('2'))

	if e.Progress().Attempted != 0 || !s.confirming {
		t.Error("answer keys must not reach the picker during confirmation")
	}
}

func TestQuizScreen_TimerTick(t *testing.T) {
	s, e := startedScreen(t)

	_, cmd := s.Update(timerTickMsg(time.Now()))
	if cmd == nil {
		t.Error("expected the next tick while running")
	}

	_ = e.SubmitQuiz(context.Background())
	_, cmd = s.Update(timerTickMsg(time.Now()))
	if cmd != nil {
		t.Error("ticks should stop once completed")
	}
}

func TestQuizScreen_KeysAfterFinalAnswer(t *testing.T) {
	e, _ := quiztest.NewEngine(t, func(c *core.Config) { c.Strict = true })
	e.SelectAllWeeks()
	if err := e.StartSession(context.Background()); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	s := New(e)

	s.Update(quiztest.Key('2'))
	s.Update(quiztest.Key('2'))
	_, cmd := s.Update(quiztest.Key('2'))
	replacedWithReview(t, cmd)

	// The replacement has not been applied yet; these must not reach the
	// completed session, which panics in strict mode.
	for _, k := range []tea.KeyPressMsg{
		quiztest.Key('2'), quiztest.Key('s'), quiztest.Key('x'), quiztest.Key('y'),
		quiztest.Special(tea.KeyEnter),
	} {
		if _, cmd := s.Update(k); cmd != nil {
			t.Errorf("key %q produced a command after completion", k.String())
		}
	}
	if s.errMsg != "" || s.confirming {
		t.Errorf("errMsg = %q confirming = %v", s.errMsg, s.confirming)
	}
	if res, ok := e.Result(); !ok || res.Score != 3 {
		t.Errorf("result = %+v, %v", res, ok)
	}
}

func TestQuizScreen_OpenHistoryMidQuiz(t *testing.T) {
	s, e := startedScreen(t)
	s.Update(quiztest.Key('2'))

	_, cmd := s.Update(quiztest.Key('h'))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*historyscreen.HistoryScreen); !ok {
		t.Errorf("pushed %T", msg.Screen)
	}
	if p := e.Progress(); p.Terminal || p.Attempted != 1 {
		t.Errorf("opening history changed the session: %+v", p)
	}
	if s.Resume() == nil {
		t.Error("clock should restart when returning to a running quiz")
	}
}

func TestClock(t *testing.T) {
	if got := clock(125 * time.Second); got != "2:05" {
		t.Errorf("clock = %q", got)
	}
}
