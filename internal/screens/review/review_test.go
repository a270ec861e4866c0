package review

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbank/internal/grading"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/quiz/quiztest"
	"github.com/abhisek/quizbank/internal/router"
	historyscreen "github.com/abhisek/quizbank/internal/screens/history"
	"github.com/abhisek/quizbank/internal/session"
)

// finished plays one correct, one wrong and one skipped answer.
func finished(t *testing.T) *quiz.Engine {
	t.Helper()
	ctx := context.Background()
	e, _ := quiztest.NewEngine(t)
	e.SelectAllWeeks()
	if err := e.StartSession(ctx); err != nil {
		t.Fatal(err)
	}
	if err := e.SubmitAnswer(ctx, quiztest.Correct); err != nil {
		t.Fatal(err)
	}
	if err := e.SubmitAnswer(ctx, "alpha"); err != nil {
		t.Fatal(err)
	}
	if err := e.SkipQuestion(ctx); err != nil {
		t.Fatal(err)
	}
	if !e.Progress().Terminal {
		t.Fatal("session should be complete")
	}
	return e
}

func TestReviewScreen_Tabs(t *testing.T) {
	s := New(finished(t), "")
	if tabs[s.tab] != grading.OutcomeCorrect {
		t.Fatalf("initial tab = %s", tabs[s.tab])
	}

	s.Update(quiztest.Key('2'))
	if tabs[s.tab] != grading.OutcomeWrong {
		t.Fatalf("tab after '2' = %s", tabs[s.tab])
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "✗ alpha") || !strings.Contains(view, "✓ "+quiztest.Correct) {
		t.Errorf("wrong bucket not rendered:\n%s", view)
	}

	s.Update(quiztest.Special(tea.KeyRight))
	if tabs[s.tab] != grading.OutcomeSkipped {
		t.Errorf("tab after right = %s", tabs[s.tab])
	}
	s.Update(quiztest.Special(tea.KeyRight))
	if tabs[s.tab] != grading.OutcomeCorrect {
		t.Errorf("right should wrap, got %s", tabs[s.tab])
	}
	s.Update(quiztest.Special(tea.KeyLeft))
	if tabs[s.tab] != grading.OutcomeSkipped {
		t.Errorf("left should wrap, got %s", tabs[s.tab])
	}
}

func TestReviewScreen_Summary(t *testing.T) {
	s := New(finished(t), "Result was not saved to history: disk full")
	view := s.View(100, 30)
	for _, want := range []string{"1 / 2", "50.00%", "disk full", "Correct (1)", "Wrong (1)", "Skipped (1)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestReviewScreen_EnterResetsAndPops(t *testing.T) {
	e := finished(t)
	s := New(e, "")
	if !s.HandlesEscape() {
		t.Fatal("review screen must own Esc")
	}

	_, cmd := s.Update(quiztest.Special(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if e.Progress().State != session.StateNotStarted {
		t.Error("session not reset")
	}
	if len(e.Selection().Selected) != 2 {
		t.Error("selection should survive the reset")
	}
}

func TestReviewScreen_OpensHistory(t *testing.T) {
	s := New(finished(t), "")
	_, cmd := s.Update(quiztest.Key('h'))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*historyscreen.HistoryScreen); !ok {
		t.Errorf("pushed %T", push.Screen)
	}
}
