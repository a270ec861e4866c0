// Package quiztest builds engines over a small fixed bank for screen and
// command tests.
package quiztest

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/history"
	"github.com/abhisek/quizbank/internal/pool"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/store"
)

// Correct is the right answer to every question in Bank. It is always the
// second option.
const Correct = "beta"

// Bank returns Biology with two questions in 2024 week 1 and one in
// 2024 week 2, and Chemistry with two questions in 2025 week 1.
func Bank() *bank.Bank {
	q := func(subject string, year, week, n int) bank.Question {
		return bank.Question{
			Subject:       subject,
			Year:          year,
			Week:          week,
			Text:          fmt.Sprintf("%s %d week %d question %d", subject, year, week, n),
			Options:       []string{"alpha", Correct, "gamma", "delta"},
			CorrectAnswer: Correct,
		}
	}
	return bank.New([]bank.Question{
		q("Biology", 2024, 1, 1),
		q("Biology", 2024, 1, 2),
		q("Biology", 2024, 2, 1),
		q("Chemistry", 2025, 1, 1),
		q("Chemistry", 2025, 1, 2),
	})
}

// NewEngine returns an engine over Bank backed by a store in a temporary
// directory. Options keep bank order, so key "2" always answers correctly.
// Each configure func may adjust the config before the engine is built.
func NewEngine(t testing.TB, configure ...func(*quiz.Config)) (*quiz.Engine, *history.Ledger) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "quizbank.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ledger := history.NewLedger(st.HistoryRepo(), "", nil)
	cfg := quiz.Config{
		Bank:   Bank(),
		Ledger: ledger,
		Builder: pool.NewBuilder(
			pool.WithRand(rand.New(rand.NewPCG(1, 2))),
			pool.WithFixedOptionOrder("Biology", "Chemistry"),
		),
	}
	for _, fn := range configure {
		fn(&cfg)
	}
	return quiz.New(cfg), ledger
}

// Key returns the key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special returns the key press for a non-printable key such as
// tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Space returns the space bar press.
func Space() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
}
