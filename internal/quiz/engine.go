// Package quiz is the entry point the presentation layer drives: it
// forwards user intents to the selection, pool builder and session
// machine, and exposes read-only views of their state.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/history"
	"github.com/abhisek/quizbank/internal/pool"
	"github.com/abhisek/quizbank/internal/review"
	"github.com/abhisek/quizbank/internal/selection"
	"github.com/abhisek/quizbank/internal/session"
)

// ErrEmptySelection is returned by StartSession when the current
// selection matches no questions. No session is created.
var ErrEmptySelection = errors.New("quiz: selection matches no questions")

// ErrUnknownSubject is returned by SelectSubject for a tag not in the bank.
var ErrUnknownSubject = errors.New("quiz: unknown subject")

// Config wires an Engine's collaborators.
type Config struct {
	Bank    *bank.Bank
	Ledger  *history.Ledger
	Builder *pool.Builder // nil uses pool.NewBuilder()
	Logger  *slog.Logger  // nil discards

	// Strict panics on invalid session transitions.
	Strict bool

	// Clock overrides time.Now for session timing.
	Clock func() time.Time
}

// Engine runs one quiz at a time over a fixed bank.
type Engine struct {
	bank    *bank.Bank
	ledger  *history.Ledger
	builder *pool.Builder
	machine *session.Machine
	sel     *selection.Selection
	logger  *slog.Logger
}

// New creates an Engine. The first subject in the bank, if any, starts
// out selected with no weeks.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	builder := cfg.Builder
	if builder == nil {
		builder = pool.NewBuilder()
	}

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithStrict(cfg.Strict),
	}
	if cfg.Clock != nil {
		opts = append(opts, session.WithClock(cfg.Clock))
	}

	var recorder session.Recorder
	if cfg.Ledger != nil {
		recorder = cfg.Ledger
	}

	e := &Engine{
		bank:    cfg.Bank,
		ledger:  cfg.Ledger,
		builder: builder,
		machine: session.NewMachine(recorder, opts...),
		sel:     selection.New(firstSubject(cfg.Bank)),
		logger:  logger,
	}
	return e
}

func firstSubject(b *bank.Bank) string {
	if subjects := b.Subjects(); len(subjects) > 0 {
		return subjects[0]
	}
	return ""
}

// Bank returns the question bank.
func (e *Engine) Bank() *bank.Bank { return e.bank }

// SelectSubject switches the active subject. Switching to a different
// subject clears the selected weeks.
func (e *Engine) SelectSubject(tag string) error {
	if !e.bank.HasSubject(tag) {
		return fmt.Errorf("%w: %q", ErrUnknownSubject, tag)
	}
	e.sel.SelectSubject(tag)
	return nil
}

// ToggleWeek flips one (year, week) pair of the active subject.
func (e *Engine) ToggleWeek(year, week int) {
	e.sel.Toggle(year, week)
}

// ToggleYear selects every week of year for the active subject, or
// deselects them all if they were already selected.
func (e *Engine) ToggleYear(year int) {
	e.sel.ToggleYear(year, e.bank.WeeksFor(e.sel.Subject()))
}

// SelectAllWeeks selects every week available for the active subject.
func (e *Engine) SelectAllWeeks() {
	e.sel.SelectAll(e.bank.WeeksFor(e.sel.Subject()))
}

// DeselectAllWeeks clears the week selection.
func (e *Engine) DeselectAllWeeks() {
	e.sel.DeselectAll()
}

// StartSession builds a randomized pool from the selection and starts a
// session over it. An empty match returns ErrEmptySelection and leaves
// the engine unchanged.
func (e *Engine) StartSession(ctx context.Context) error {
	if e.machine.State() != session.StateNotStarted {
		// Let the machine report the contract violation.
		return e.machine.Start(ctx, nil)
	}

	filtered := e.bank.Filter(e.sel.Subject(), e.sel.Set())
	if len(filtered) == 0 {
		e.logger.InfoContext(ctx, "start rejected: empty selection",
			"subject", e.sel.Subject(), "weeks", e.sel.Len())
		return ErrEmptySelection
	}

	p := e.builder.Build(filtered)
	if err := e.machine.Start(ctx, p); err != nil {
		if errors.Is(err, session.ErrEmptyPool) {
			return ErrEmptySelection
		}
		return err
	}
	return nil
}

// SubmitAnswer grades option against the current question.
func (e *Engine) SubmitAnswer(ctx context.Context, option string) error {
	return e.machine.Answer(ctx, option)
}

// SkipQuestion moves past the current question without grading it.
func (e *Engine) SkipQuestion(ctx context.Context) error {
	return e.machine.Skip(ctx)
}

// SubmitQuiz ends the session early.
func (e *Engine) SubmitQuiz(ctx context.Context) error {
	return e.machine.Submit(ctx)
}

// ResetToMenu discards the current session. The selection and history
// are kept.
func (e *Engine) ResetToMenu() {
	e.machine.Reset()
}

// ClearHistory empties the history ledger.
func (e *Engine) ClearHistory(ctx context.Context) error {
	if e.ledger == nil {
		return nil
	}
	return e.ledger.Clear(ctx)
}

// ExportHistory writes the ledger as a JSON list to w.
func (e *Engine) ExportHistory(ctx context.Context, w io.Writer) (int, error) {
	if e.ledger == nil {
		return 0, nil
	}
	return e.ledger.Export(ctx, w)
}

// Progress is a snapshot of the running session.
type Progress struct {
	State       session.State
	SessionID   string
	Question    bank.Question
	HasQuestion bool
	Index       int // 0-based
	Total       int
	Score       int
	Attempted   int
	Answered    int
	Terminal    bool
	Elapsed     time.Duration
}

// Progress returns the current session snapshot.
func (e *Engine) Progress() Progress {
	m := e.machine
	q, ok := m.Current()
	return Progress{
		State:       m.State(),
		SessionID:   m.SessionID(),
		Question:    q,
		HasQuestion: ok,
		Index:       m.Index(),
		Total:       m.Total(),
		Score:       m.Score(),
		Attempted:   m.Attempted(),
		Answered:    m.Answered(),
		Terminal:    m.Terminal(),
		Elapsed:     m.Elapsed(),
	}
}

// Review partitions the session's answers into outcome buckets.
func (e *Engine) Review() review.Buckets {
	return review.Project(e.machine.Records())
}

// Result returns the completed session's history entry.
func (e *Engine) Result() (history.Entry, bool) {
	return e.machine.Entry()
}

// History returns the full ledger, oldest first.
func (e *Engine) History(ctx context.Context) []history.Entry {
	if e.ledger == nil {
		return []history.Entry{}
	}
	return e.ledger.ReadAll(ctx)
}

// Series returns the ledger as chart points.
func (e *Engine) Series(ctx context.Context) []review.Point {
	return review.Series(e.History(ctx))
}

// SelectionView describes the active filter for display.
type SelectionView struct {
	Subject   string
	Available []bank.WeekKey // every week the bank has for Subject
	Selected  []bank.WeekKey
	Matches   int // questions the selection would draw from
}

// IsSelected reports whether key is in the selection.
func (v SelectionView) IsSelected(key bank.WeekKey) bool {
	return slices.Contains(v.Selected, key)
}

// Selection returns the active filter.
func (e *Engine) Selection() SelectionView {
	subject := e.sel.Subject()
	matches := 0
	for _, k := range e.sel.Keys() {
		matches += e.bank.CountFor(subject, k)
	}
	return SelectionView{
		Subject:   subject,
		Available: e.bank.WeeksFor(subject),
		Selected:  e.sel.Keys(),
		Matches:   matches,
	}
}
