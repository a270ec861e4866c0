package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// historyRepo implements HistoryRepo with SQL built by ent's dialect builder.
type historyRepo struct {
	store *Store
}

func (r *historyRepo) AppendHistory(ctx context.Context, slot string, data HistoryEntryData) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	recordedAt := data.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(historyTable).
		Columns("slot", "session_id", "recorded_at", "score", "total", "accuracy", "duration_secs").
		Values(slot, data.SessionID, recordedAt.UTC().Format(time.RFC3339Nano),
			data.Score, data.Total, data.Accuracy, data.DurationSecs).
		Query()

	var res sql.Result
	if err := r.store.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("save history entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history entry id: %w", err)
	}
	return id, nil
}

func (r *historyRepo) QueryHistory(ctx context.Context, slot string) ([]HistoryRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	t := b.Table(historyTable)
	query, args := b.Select(
		t.C("id"), t.C("session_id"), t.C("recorded_at"),
		t.C("score"), t.C("total"), t.C("accuracy"), t.C("duration_secs"),
	).
		From(t).
		Where(entsql.EQ(t.C("slot"), slot)).
		OrderBy(entsql.Asc(t.C("id"))).
		Query()

	var rows entsql.Rows
	if err := r.store.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []HistoryRecord
	for rows.Next() {
		var (
			rec        HistoryRecord
			recordedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &recordedAt,
			&rec.Score, &rec.Total, &rec.Accuracy, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("history entry %d: bad timestamp %q: %w", rec.ID, recordedAt, err)
		}
		rec.Slot = slot
		rec.RecordedAt = ts
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return records, nil
}

func (r *historyRepo) CountHistory(ctx context.Context, slot string) (int, error) {
	b := entsql.Dialect(dialect.SQLite)
	t := b.Table(historyTable)
	query, args := b.Select(entsql.Count("*")).
		From(t).
		Where(entsql.EQ(t.C("slot"), slot)).
		Query()

	var rows entsql.Rows
	if err := r.store.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan history count: %w", err)
		}
	}
	return n, rows.Err()
}

func (r *historyRepo) ClearHistory(ctx context.Context, slot string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	query, args := entsql.Dialect(dialect.SQLite).
		Delete(historyTable).
		Where(entsql.EQ("slot", slot)).
		Query()

	var res sql.Result
	if err := r.store.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return n, nil
}
