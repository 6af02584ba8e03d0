package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestPragmasApplyToEveryConnection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.DB().Conn(ctx)
	if err != nil {
		t.Fatalf("first conn: %v", err)
	}
	defer first.Close()
	second, err := s.DB().Conn(ctx)
	if err != nil {
		t.Fatalf("second conn: %v", err)
	}
	defer second.Close()

	for i, c := range []*sql.Conn{first, second} {
		var timeout int
		if err := c.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout); err != nil {
			t.Fatalf("conn %d: %v", i, err)
		}
		if timeout != 5000 {
			t.Errorf("conn %d busy_timeout = %d, want 5000", i, timeout)
		}
	}
}

func TestWithPragmas(t *testing.T) {
	got := withPragmas("file:x?mode=memory")
	if !strings.HasPrefix(got, "file:x?mode=memory&_pragma=journal_mode%28WAL%29&") {
		t.Errorf("unexpected dsn %q", got)
	}
	if got := withPragmas("/tmp/a.db"); !strings.HasPrefix(got, "/tmp/a.db?_pragma=") {
		t.Errorf("unexpected dsn %q", got)
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "langcoach.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestSchemaCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{kvTable, llmEventsTable} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestKVRoundTrip(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("get missing: ok=%v err=%v", ok, err)
	}

	if err := kv.Put(ctx, "languageCoachHistory", "[]"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Put(ctx, "languageCoachHistory", `[{"id":"a"}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, ok, err := kv.Get(ctx, "languageCoachHistory")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != `[{"id":"a"}]` {
		t.Errorf("value = %q", got)
	}

	if err := kv.Put(ctx, "languageCoachFavorites", "[]"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := newSequenceCounter(s.DB(), llmEventSeqKey).Next(ctx); err != nil {
		t.Fatalf("next: %v", err)
	}
	keys, err := kv.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "languageCoachFavorites" {
		t.Errorf("keys = %v", keys)
	}

	if err := kv.Delete(ctx, "languageCoachHistory"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx, "languageCoachHistory"); err != nil {
		t.Fatalf("delete twice: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "languageCoachHistory"); ok {
		t.Error("expected key to be gone")
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc := newSequenceCounter(db, "seq:test")

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}

	// Counters with different keys are independent.
	other, err := newSequenceCounter(db, "seq:other").Next(ctx)
	if err != nil || other != 1 {
		t.Errorf("other counter = %d, %v; want 1", other, err)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "groq", Model: "llama-3.3-70b-versatile", Purpose: "exercise-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: `{"a":1}`},
		{Provider: "groq", Model: "llama-3.3-70b-versatile", Purpose: "exercise-answers", InputTokens: 80, OutputTokens: 40, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "exercise-gen", InputTokens: 10, OutputTokens: 5, LatencyMs: 400, Success: false, ErrorMessage: "rate limited"},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].Sequence != 3 || all[0].Success || all[0].ErrorMessage != "rate limited" {
		t.Errorf("newest event = %+v", all[0])
	}
	if all[2].RequestBody != `{"a":1}` || !all[2].Success {
		t.Errorf("oldest event = %+v", all[2])
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "exercise-gen"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Model != "gpt-4o-mini" {
		t.Errorf("limited = %+v", limited)
	}

	got, err := repo.GetLLMEvent(ctx, all[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Purpose != "exercise-answers" {
		t.Errorf("purpose = %q", got.Purpose)
	}
	if _, err := repo.GetLLMEvent(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	gen := byPurpose[1]
	if gen.Purpose != "exercise-gen" || gen.Calls != 2 || gen.InputTokens != 110 || gen.AvgLatencyMs != 300 {
		t.Errorf("exercise-gen usage = %+v", gen)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[1].Calls != 2 || byModel[1].OutputTokens != 90 {
		t.Errorf("usage by model = %+v", byModel)
	}

	if err := repo.ClearLLMEvents(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	all, _ = repo.QueryLLMEvents(ctx, QueryOpts{})
	if len(all) != 0 {
		t.Errorf("expected no events after clear, got %d", len(all))
	}

	if err := repo.AppendLLMRequest(ctx, events[0]); err != nil {
		t.Fatalf("append after clear: %v", err)
	}
	all, _ = repo.QueryLLMEvents(ctx, QueryOpts{})
	if len(all) != 1 || all[0].Sequence != 4 {
		t.Errorf("sequence must continue after clear, got %+v", all)
	}
}
