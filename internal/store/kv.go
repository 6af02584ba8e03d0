package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// KV stores whole string values under a key. Writers replace the value
// atomically; there is no partial update.
type KV struct {
	db *sql.DB
}

// Get returns the value stored under key. ok is false when the key is
// absent.
func (kv *KV) Get(ctx context.Context, key string) (string, bool, error) {
	b := builder()
	t := b.Table(kvTable)
	query, args := b.Select(t.C("value")).
		From(t).
		Where(entsql.EQ(t.C("key"), key)).
		Query()

	var value string
	err := kv.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (kv *KV) Put(ctx context.Context, key, value string) error {
	query, args := builder().Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := kv.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (kv *KV) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete(kvTable).
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := kv.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Keys returns the stored keys in lexical order. Sequence counter rows
// are bookkeeping and are left out.
func (kv *KV) Keys(ctx context.Context) ([]string, error) {
	b := builder()
	t := b.Table(kvTable)
	query, args := b.Select(t.C("key")).From(t).
		Where(entsql.Not(entsql.HasPrefix(t.C("key"), seqKeyPrefix))).
		OrderBy(t.C("key")).
		Query()

	rows, err := kv.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
