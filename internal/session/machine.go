package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/grading"
	"github.com/abhisek/quizbank/internal/history"
)

// State is the lifecycle phase of a session.
type State int

const (
	StateNotStarted State = iota // No pool loaded
	StateInProgress              // Serving questions
	StateCompleted               // Terminal until Reset
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Recorder persists completed-session summaries. *history.Ledger
// satisfies it.
type Recorder interface {
	Append(ctx context.Context, e history.Entry) (history.Entry, error)
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger used for contract violations and ledger
// failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithStrict makes invalid transitions panic instead of returning an error.
func WithStrict(strict bool) Option {
	return func(m *Machine) { m.strict = strict }
}

// WithClock replaces time.Now for start and finish timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// Machine owns one quiz session from start to completion.
// It is not safe for concurrent use; all calls come from one goroutine.
type Machine struct {
	recorder Recorder
	logger   *slog.Logger
	strict   bool
	now      func() time.Time

	state      State
	sessionID  string
	pool       []bank.Question
	index      int
	score      int
	attempted  int
	records    []grading.Record
	startedAt  time.Time
	finishedAt time.Time
	entry      *history.Entry
}

// NewMachine creates a Machine in StateNotStarted. A nil recorder keeps
// results in memory only.
func NewMachine(recorder Recorder, opts ...Option) *Machine {
	m := &Machine{
		recorder: recorder,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins a session over pool. The pool must be non-empty and the
// machine must not have been started.
func (m *Machine) Start(ctx context.Context, pool []bank.Question) error {
	if m.state != StateNotStarted {
		return m.invalid("start")
	}
	if len(pool) == 0 {
		return ErrEmptyPool
	}

	m.pool = append([]bank.Question(nil), pool...)
	m.index = 0
	m.score = 0
	m.attempted = 0
	m.records = make([]grading.Record, 0, len(pool))
	m.startedAt = m.now()
	m.finishedAt = time.Time{}
	m.sessionID = uuid.New().String()
	m.entry = nil
	m.state = StateInProgress

	m.logger.DebugContext(ctx, "session started",
		"session_id", m.sessionID, "questions", len(m.pool))
	return nil
}

// Answer grades option against the current question and advances. On the
// last question the session completes and is recorded; a *RecordError
// is returned if recording fails.
func (m *Machine) Answer(ctx context.Context, option string) error {
	if m.state != StateInProgress {
		return m.invalid("answer")
	}

	rec := grading.Grade(m.pool[m.index], option)
	m.records = append(m.records, rec)
	m.attempted++
	if rec.Correct {
		m.score++
	}
	return m.advance(ctx)
}

// Skip records the current question as skipped and advances. Skips count
// toward neither score nor attempted.
func (m *Machine) Skip(ctx context.Context) error {
	if m.state != StateInProgress {
		return m.invalid("skip")
	}

	m.records = append(m.records, grading.Skip(m.pool[m.index]))
	return m.advance(ctx)
}

// Submit ends the session early with the current tallies. Questions not
// yet reached are discarded without grading.
func (m *Machine) Submit(ctx context.Context) error {
	if m.state != StateInProgress {
		return m.invalid("submit")
	}
	return m.complete(ctx)
}

// Reset returns the machine to StateNotStarted and drops all session
// data. Recorded history is untouched.
func (m *Machine) Reset() {
	m.state = StateNotStarted
	m.sessionID = ""
	m.pool = nil
	m.index = 0
	m.score = 0
	m.attempted = 0
	m.records = nil
	m.startedAt = time.Time{}
	m.finishedAt = time.Time{}
	m.entry = nil
}

func (m *Machine) advance(ctx context.Context) error {
	if m.index == len(m.pool)-1 {
		return m.complete(ctx)
	}
	m.index++
	return nil
}

// complete freezes the tallies, enters StateCompleted and then issues
// the ledger write. The entry is built from the final score and attempted
// counts, after the last record was applied.
func (m *Machine) complete(ctx context.Context) error {
	m.finishedAt = m.now()
	m.state = StateCompleted

	entry := history.NewEntry(m.sessionID, m.finishedAt, m.score, m.attempted, m.finishedAt.Sub(m.startedAt))
	m.entry = &entry

	m.logger.InfoContext(ctx, "session completed",
		"session_id", m.sessionID,
		"score", m.score,
		"attempted", m.attempted,
		"answered", len(m.records),
		"pool", len(m.pool),
		"accuracy", entry.AccuracyText(),
	)

	if m.recorder == nil {
		return nil
	}
	stored, err := m.recorder.Append(ctx, entry)
	if err != nil {
		m.logger.WarnContext(ctx, "session result not recorded",
			"session_id", m.sessionID, "error", err)
		return &RecordError{Entry: entry, Err: err}
	}
	m.entry = &stored
	return nil
}

func (m *Machine) invalid(op string) error {
	err := &TransitionError{Op: op, State: m.state}
	m.logger.Error("invalid session transition", "op", op, "state", m.state.String())
	if m.strict {
		panic(err)
	}
	return err
}

// State returns the lifecycle phase.
func (m *Machine) State() State { return m.state }

// Terminal reports whether the session has completed.
func (m *Machine) Terminal() bool { return m.state == StateCompleted }

// SessionID identifies the current session; empty before Start.
func (m *Machine) SessionID() string { return m.sessionID }

// Current returns the question being asked. ok is false unless the
// session is in progress.
func (m *Machine) Current() (q bank.Question, ok bool) {
	if m.state != StateInProgress {
		return bank.Question{}, false
	}
	return m.pool[m.index], true
}

// Index is the 0-based position of the current question.
func (m *Machine) Index() int { return m.index }

// Total is the pool size.
func (m *Machine) Total() int { return len(m.pool) }

// Score is the number of correct answers.
func (m *Machine) Score() int { return m.score }

// Attempted is the number of graded, non-skipped answers.
func (m *Machine) Attempted() int { return m.attempted }

// Answered is the number of records, graded or skipped.
func (m *Machine) Answered() int { return len(m.records) }

// Records returns a copy of the answer records in presentation order.
func (m *Machine) Records() []grading.Record {
	return append([]grading.Record(nil), m.records...)
}

// Entry returns the history entry built at completion.
func (m *Machine) Entry() (history.Entry, bool) {
	if m.entry == nil {
		return history.Entry{}, false
	}
	return *m.entry, true
}

// Elapsed is the time since Start, frozen at completion.
func (m *Machine) Elapsed() time.Duration {
	switch m.state {
	case StateInProgress:
		return m.now().Sub(m.startedAt)
	case StateCompleted:
		return m.finishedAt.Sub(m.startedAt)
	default:
		return 0
	}
}
