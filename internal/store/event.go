package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Sequence counters live in kv rows under seqKeyPrefix. Row ids restart
// after `langcoach llm clear`; the llm_events sequence does not, so event
// numbers shown to users are never reused.
const (
	seqKeyPrefix   = "seq:"
	llmEventSeqKey = seqKeyPrefix + llmEventsTable
)

// sequenceCounter hands out increasing numbers from a kv row. The upsert
// and RETURNING run as one statement, so concurrent writers never see the
// same value.
type sequenceCounter struct {
	db  *sql.DB
	key string
}

func newSequenceCounter(db *sql.DB, key string) *sequenceCounter {
	return &sequenceCounter{db: db, key: key}
}

// Next returns the next number, starting at 1.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	var seq int64
	err := sc.db.QueryRowContext(ctx, `
		INSERT INTO `+kvTable+` (key, value, updated_at) VALUES (?, '1', ?)
		ON CONFLICT (key) DO UPDATE SET
			value = CAST(value AS INTEGER) + 1,
			updated_at = excluded.updated_at
		RETURNING CAST(value AS INTEGER)`,
		sc.key, time.Now().UnixMilli(),
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next %s: %w", sc.key, err)
	}
	return seq, nil
}
