package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mindreset/internal/progress"
)

// KVRepo is the SQLite-backed progress.KV.
type KVRepo struct {
	store *Store
}

var _ progress.KV = (*KVRepo)(nil)

func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := builder().
		Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("name", key)).
		Query()

	var value string
	err := r.store.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder().
		Insert(kvTable).
		Columns("name", "value", "updated_at").
		Values(key, value, time.Now().Unix()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.store.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Clear wipes the whole store, not only the keys, so a restart also drops
// the answer history.
func (r *KVRepo) Clear(ctx context.Context) error {
	return r.store.Clear(ctx)
}

// all returns every stored key and value.
func (r *KVRepo) all(ctx context.Context) (map[string]string, error) {
	query, args := builder().
		Select("name", "value").
		From(entsql.Table(kvTable)).
		OrderBy("name").
		Query()

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}
