package store

import (
	"context"
	"time"
)

// HistoryEntryData is one completed-session summary as written to storage.
type HistoryEntryData struct {
	SessionID    string
	RecordedAt   time.Time
	Score        int
	Total        int
	Accuracy     float64
	DurationSecs int
}

// HistoryRecord is a stored history entry.
type HistoryRecord struct {
	ID   int64
	Slot string
	HistoryEntryData
}

// HistoryRepo persists history entries grouped into named slots.
type HistoryRepo interface {
	// AppendHistory adds an entry to the end of a slot and returns its ID.
	AppendHistory(ctx context.Context, slot string, data HistoryEntryData) (int64, error)

	// QueryHistory returns every entry of a slot, oldest first.
	QueryHistory(ctx context.Context, slot string) ([]HistoryRecord, error)

	// CountHistory returns the number of entries in a slot.
	CountHistory(ctx context.Context, slot string) (int, error)

	// ClearHistory removes every entry of a slot and returns how many were removed.
	ClearHistory(ctx context.Context, slot string) (int64, error)
}

// SettingsRepo stores small named preferences.
type SettingsRepo interface {
	// GetSetting returns the value and whether it was set.
	GetSetting(ctx context.Context, name string) (string, bool, error)

	// PutSetting creates or replaces a value.
	PutSetting(ctx context.Context, name, value string) error
}
