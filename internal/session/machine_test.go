package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/grading"
	"github.com/abhisek/quizbank/internal/history"
)

// memRecorder keeps appended entries in memory and can be made to fail.
type memRecorder struct {
	entries []history.Entry
	err     error
	calls   int
}

func (r *memRecorder) Append(_ context.Context, e history.Entry) (history.Entry, error) {
	r.calls++
	if r.err != nil {
		return e, r.err
	}
	e.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, e)
	return e, nil
}

func makePool(n int) []bank.Question {
	pool := make([]bank.Question, n)
	for i := range pool {
		pool[i] = bank.Question{
			Index:         i,
			Subject:       "Biology",
			Year:          2024,
			Week:          1,
			Text:          "Q" + string(rune('A'+i)),
			Options:       []string{"right", "wrong", "other"},
			CorrectAnswer: "right",
		}
	}
	return pool
}

// fakeClock advances by step on every call.
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	t := start
	return func() time.Time {
		now := t
		t = t.Add(step)
		return now
	}
}

func checkInvariant(t *testing.T, m *Machine) {
	t.Helper()
	if !(0 <= m.Score() && m.Score() <= m.Attempted() && m.Attempted() <= m.Answered() && m.Answered() <= m.Total()) {
		t.Fatalf("invariant broken: score=%d attempted=%d answered=%d total=%d",
			m.Score(), m.Attempted(), m.Answered(), m.Total())
	}
}

func TestStart(t *testing.T) {
	m := NewMachine(nil)
	if m.State() != StateNotStarted {
		t.Fatalf("initial state = %s", m.State())
	}
	if err := m.Start(context.Background(), makePool(3)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if m.State() != StateInProgress {
		t.Errorf("state = %s, want in-progress", m.State())
	}
	if m.Index() != 0 || m.Score() != 0 || m.Attempted() != 0 || m.Answered() != 0 {
		t.Error("counters not zeroed on start")
	}
	if m.SessionID() == "" {
		t.Error("expected a session id")
	}
	q, ok := m.Current()
	if !ok || q.Text != "QA" {
		t.Errorf("Current = %q, %v", q.Text, ok)
	}
}

func TestStart_EmptyPool(t *testing.T) {
	m := NewMachine(nil)
	err := m.Start(context.Background(), nil)
	if !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("err = %v, want ErrEmptyPool", err)
	}
	if m.State() != StateNotStarted {
		t.Errorf("state = %s, want not-started", m.State())
	}
	if m.Total() != 0 || m.SessionID() != "" {
		t.Error("empty start must not create a pool")
	}
}

func TestStart_CopiesPool(t *testing.T) {
	pool := makePool(2)
	m := NewMachine(nil)
	if err := m.Start(context.Background(), pool); err != nil {
		t.Fatal(err)
	}
	pool[0] = bank.Question{Text: "replaced"}
	if q, _ := m.Current(); q.Text != "QA" {
		t.Errorf("machine observed caller mutation: %q", q.Text)
	}
}

func TestAllCorrectCompletesAndRecords(t *testing.T) {
	rec := &memRecorder{}
	m := NewMachine(rec)
	ctx := context.Background()
	if err := m.Start(ctx, makePool(2)); err != nil {
		t.Fatal(err)
	}

	if err := m.Answer(ctx, "right"); err != nil {
		t.Fatal(err)
	}
	if m.Terminal() {
		t.Fatal("completed too early")
	}
	if err := m.Answer(ctx, "right"); err != nil {
		t.Fatal(err)
	}

	if !m.Terminal() {
		t.Fatal("expected completion after last answer")
	}
	if m.Score() != 2 || m.Attempted() != 2 {
		t.Errorf("score=%d attempted=%d, want 2/2", m.Score(), m.Attempted())
	}
	if len(rec.entries) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(rec.entries))
	}
	e := rec.entries[0]
	if e.Score != 2 || e.Total != 2 || e.AccuracyText() != "100.00" {
		t.Errorf("entry = %+v (accuracy %s)", e, e.AccuracyText())
	}
	if e.SessionID != m.SessionID() {
		t.Errorf("entry session %q != %q", e.SessionID, m.SessionID())
	}
	got, ok := m.Entry()
	if !ok || got.ID != 1 {
		t.Errorf("Entry() = %+v, %v", got, ok)
	}
	if _, ok := m.Current(); ok {
		t.Error("no current question after completion")
	}
}

func TestSkipWrongRight(t *testing.T) {
	rec := &memRecorder{}
	m := NewMachine(rec)
	ctx := context.Background()
	m.Start(ctx, makePool(3))

	if err := m.Skip(ctx); err != nil {
		t.Fatal(err)
	}
	checkInvariant(t, m)
	if err := m.Answer(ctx, "wrong"); err != nil {
		t.Fatal(err)
	}
	checkInvariant(t, m)
	if err := m.Answer(ctx, "right"); err != nil {
		t.Fatal(err)
	}
	checkInvariant(t, m)

	if m.Score() != 1 || m.Attempted() != 2 {
		t.Errorf("score=%d attempted=%d, want 1/2", m.Score(), m.Attempted())
	}
	outcomes := []grading.Outcome{grading.OutcomeSkipped, grading.OutcomeWrong, grading.OutcomeCorrect}
	for i, r := range m.Records() {
		if r.Outcome() != outcomes[i] {
			t.Errorf("record %d = %s, want %s", i, r.Outcome(), outcomes[i])
		}
	}
	if len(rec.entries) != 1 || rec.entries[0].AccuracyText() != "50.00" {
		t.Errorf("ledger = %+v", rec.entries)
	}
}

func TestFinalTalliesIncludeLastAnswer(t *testing.T) {
	rec := &memRecorder{}
	m := NewMachine(rec)
	ctx := context.Background()
	m.Start(ctx, makePool(1))

	if err := m.Answer(ctx, "right"); err != nil {
		t.Fatal(err)
	}
	e := rec.entries[0]
	if e.Score != 1 || e.Total != 1 {
		t.Errorf("entry recorded stale tallies: score=%d total=%d", e.Score, e.Total)
	}
}

func TestSubmitEarly(t *testing.T) {
	tests := []struct {
		name          string
		first         func(context.Context, *Machine) error
		wantAttempted int
	}{
		{"answered", func(ctx context.Context, m *Machine) error { return m.Answer(ctx, "right") }, 1},
		{"skipped", func(ctx context.Context, m *Machine) error { return m.Skip(ctx) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &memRecorder{}
			m := NewMachine(rec)
			ctx := context.Background()
			pool := makePool(5)
			m.Start(ctx, pool)

			if err := tt.first(ctx, m); err != nil {
				t.Fatal(err)
			}
			if err := m.Submit(ctx); err != nil {
				t.Fatal(err)
			}

			if !m.Terminal() {
				t.Fatal("expected completion")
			}
			if m.Attempted() != tt.wantAttempted {
				t.Errorf("attempted = %d, want %d", m.Attempted(), tt.wantAttempted)
			}
			records := m.Records()
			if len(records) != 1 {
				t.Fatalf("records = %d, want 1", len(records))
			}
			for _, q := range pool[1:] {
				for _, r := range records {
					if r.Question.Text == q.Text {
						t.Errorf("unreached question %q was recorded", q.Text)
					}
				}
			}
			if len(rec.entries) != 1 || rec.entries[0].Total != tt.wantAttempted {
				t.Errorf("ledger = %+v", rec.entries)
			}
		})
	}
}

func TestSubmitAtStart(t *testing.T) {
	rec := &memRecorder{}
	m := NewMachine(rec)
	ctx := context.Background()
	m.Start(ctx, makePool(4))

	if err := m.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	if m.Answered() != 0 || m.Attempted() != 0 {
		t.Errorf("answered=%d attempted=%d", m.Answered(), m.Attempted())
	}
	if rec.entries[0].AccuracyText() != "0.00" {
		t.Errorf("accuracy = %s, want 0.00", rec.entries[0].AccuracyText())
	}
}

func TestInvalidTransitions(t *testing.T) {
	ctx := context.Background()

	notStarted := NewMachine(nil)
	completed := NewMachine(nil)
	completed.Start(ctx, makePool(1))
	completed.Submit(ctx)
	inProgress := NewMachine(nil)
	inProgress.Start(ctx, makePool(2))

	tests := []struct {
		name string
		m    *Machine
		call func(*Machine) error
	}{
		{"answer before start", notStarted, func(m *Machine) error { return m.Answer(ctx, "right") }},
		{"skip before start", notStarted, func(m *Machine) error { return m.Skip(ctx) }},
		{"submit before start", notStarted, func(m *Machine) error { return m.Submit(ctx) }},
		{"answer after completion", completed, func(m *Machine) error { return m.Answer(ctx, "right") }},
		{"skip after completion", completed, func(m *Machine) error { return m.Skip(ctx) }},
		{"submit after completion", completed, func(m *Machine) error { return m.Submit(ctx) }},
		{"start after completion", completed, func(m *Machine) error { return m.Start(ctx, makePool(1)) }},
		{"start while running", inProgress, func(m *Machine) error { return m.Start(ctx, makePool(1)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.m.State()
			answered := tt.m.Answered()

			err := tt.call(tt.m)

			var te *TransitionError
			if !errors.As(err, &te) {
				t.Fatalf("err = %v, want *TransitionError", err)
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Error("TransitionError must wrap ErrInvalidTransition")
			}
			if te.State != before {
				t.Errorf("error state = %s, want %s", te.State, before)
			}
			if tt.m.State() != before || tt.m.Answered() != answered {
				t.Error("invalid transition changed machine state")
			}
		})
	}
}

func TestStrictPanics(t *testing.T) {
	m := NewMachine(nil, WithStrict(true))
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if err, ok := r.(error); !ok || !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("panic value = %v", r)
		}
	}()
	m.Answer(context.Background(), "right")
}

func TestRecordFailureKeepsCompleted(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	m := NewMachine(rec)
	ctx := context.Background()
	m.Start(ctx, makePool(1))

	err := m.Answer(ctx, "right")
	var re *RecordError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want *RecordError", err)
	}
	if re.Entry.Score != 1 || re.Entry.Total != 1 {
		t.Errorf("unrecorded entry = %+v", re.Entry)
	}
	if !m.Terminal() {
		t.Error("ledger failure must not roll back completion")
	}
	if m.Score() != 1 || m.Attempted() != 1 {
		t.Error("in-memory result lost after ledger failure")
	}
	if e, ok := m.Entry(); !ok || e.ID != 0 {
		t.Errorf("Entry() = %+v, %v", e, ok)
	}
}

func TestReset(t *testing.T) {
	rec := &memRecorder{}
	m := NewMachine(rec)
	ctx := context.Background()
	m.Start(ctx, makePool(2))
	m.Answer(ctx, "right")
	m.Submit(ctx)
	first := m.SessionID()

	m.Reset()

	if m.State() != StateNotStarted {
		t.Errorf("state = %s", m.State())
	}
	if m.Total() != 0 || m.Index() != 0 || m.Score() != 0 || m.Attempted() != 0 || len(m.Records()) != 0 {
		t.Error("reset left session data behind")
	}
	if m.SessionID() != "" || m.Elapsed() != 0 {
		t.Error("reset left id or timestamps")
	}
	if _, ok := m.Entry(); ok {
		t.Error("reset left an entry")
	}
	if len(rec.entries) != 1 {
		t.Error("reset must not touch the ledger")
	}

	if err := m.Start(ctx, makePool(1)); err != nil {
		t.Fatalf("start after reset: %v", err)
	}
	if m.SessionID() == first {
		t.Error("expected a fresh session id")
	}
}

func TestElapsedAndDuration(t *testing.T) {
	start := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	rec := &memRecorder{}
	m := NewMachine(rec, WithClock(fakeClock(start, 15*time.Second)))
	ctx := context.Background()

	m.Start(ctx, makePool(1)) // clock: 8:00:00
	m.Answer(ctx, "right")    // clock: 8:00:15

	if got := m.Elapsed(); got != 15*time.Second {
		t.Errorf("Elapsed = %v, want 15s", got)
	}
	if rec.entries[0].DurationSecs != 15 {
		t.Errorf("duration = %d, want 15", rec.entries[0].DurationSecs)
	}
	if !rec.entries[0].Date.Equal(start.Add(15 * time.Second)) {
		t.Errorf("date = %v", rec.entries[0].Date)
	}
}

func TestRecordsIsACopy(t *testing.T) {
	m := NewMachine(nil)
	ctx := context.Background()
	m.Start(ctx, makePool(2))
	m.Answer(ctx, "wrong")

	recs := m.Records()
	recs[0].Correct = true
	if m.Records()[0].Correct {
		t.Error("Records exposed internal storage")
	}
}

func TestInvariantUnderRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	ctx := context.Background()

	for trial := range 200 {
		m := NewMachine(&memRecorder{})
		n := 1 + rng.IntN(8)
		if err := m.Start(ctx, makePool(n)); err != nil {
			t.Fatal(err)
		}
		for !m.Terminal() {
			switch rng.IntN(10) {
			case 0:
				m.Submit(ctx)
			case 1, 2, 3:
				m.Skip(ctx)
			case 4, 5, 6:
				m.Answer(ctx, "right")
			default:
				m.Answer(ctx, "wrong")
			}
			checkInvariant(t, m)
		}
		if m.Answered() > n {
			t.Fatalf("trial %d: %d records for pool of %d", trial, m.Answered(), n)
		}
	}
}
