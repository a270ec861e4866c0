package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/quizbank/internal/store"
)

// DefaultSlot is the storage slot used when none is configured.
const DefaultSlot = "scoreHistory"

// appendAttempts bounds storage writes: the first try plus one retry.
const appendAttempts = 2

// Ledger is the append-only log of completed sessions, bound to one slot.
type Ledger struct {
	repo   store.HistoryRepo
	slot   string
	logger *slog.Logger
}

// NewLedger creates a Ledger over repo. An empty slot selects DefaultSlot;
// a nil logger discards log output.
func NewLedger(repo store.HistoryRepo, slot string, logger *slog.Logger) *Ledger {
	if slot == "" {
		slot = DefaultSlot
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Ledger{repo: repo, slot: slot, logger: logger}
}

// Slot returns the storage slot name.
func (l *Ledger) Slot() string {
	return l.slot
}

// Append adds e to the end of the ledger and returns it with its ID set.
// A failed write is retried once before the error is returned.
func (l *Ledger) Append(ctx context.Context, e Entry) (Entry, error) {
	data := store.HistoryEntryData{
		SessionID:    e.SessionID,
		RecordedAt:   e.Date,
		Score:        e.Score,
		Total:        e.Total,
		Accuracy:     e.Accuracy,
		DurationSecs: e.DurationSecs,
	}

	var lastErr error
	for attempt := range appendAttempts {
		id, err := l.repo.AppendHistory(ctx, l.slot, data)
		if err == nil {
			e.ID = id
			return e, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		l.logger.Warn("history append failed",
			"slot", l.slot, "attempt", attempt+1, "error", err)
	}
	return e, fmt.Errorf("append history: %w", lastErr)
}

// ReadAll returns every entry, oldest first. Storage failures are logged
// and yield an empty history so quiz-taking is never blocked.
func (l *Ledger) ReadAll(ctx context.Context) []Entry {
	recs, err := l.repo.QueryHistory(ctx, l.slot)
	if err != nil {
		l.logger.Error("history unavailable, showing empty history",
			"slot", l.slot, "error", err)
		return []Entry{}
	}

	entries := make([]Entry, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, Entry{
			ID:           r.ID,
			SessionID:    r.SessionID,
			Date:         r.RecordedAt,
			Score:        r.Score,
			Total:        r.Total,
			Accuracy:     r.Accuracy,
			DurationSecs: r.DurationSecs,
		})
	}
	return entries
}

// Clear removes every entry. The slot remains usable afterwards.
func (l *Ledger) Clear(ctx context.Context) error {
	n, err := l.repo.ClearHistory(ctx, l.slot)
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	l.logger.Info("history cleared", "slot", l.slot, "entries", n)
	return nil
}

// Count returns the number of stored entries.
func (l *Ledger) Count(ctx context.Context) (int, error) {
	return l.repo.CountHistory(ctx, l.slot)
}
