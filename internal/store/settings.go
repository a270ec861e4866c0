package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type settingsRepo struct {
	store *Store
}

func (r *settingsRepo) GetSetting(ctx context.Context, name string) (string, bool, error) {
	b := entsql.Dialect(dialect.SQLite)
	t := b.Table(settingsTable)
	query, args := b.Select(t.C("value")).
		From(t).
		Where(entsql.EQ(t.C("name"), name)).
		Query()

	var rows entsql.Rows
	if err := r.store.drv.Query(ctx, query, args, &rows); err != nil {
		return "", false, fmt.Errorf("query setting %q: %w", name, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false, rows.Err()
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan setting %q: %w", name, err)
	}
	return value, true, nil
}

func (r *settingsRepo) PutSetting(ctx context.Context, name, value string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(settingsTable).
		Columns("name", "value").
		Values(name, value).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.store.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save setting %q: %w", name, err)
	}
	return nil
}
