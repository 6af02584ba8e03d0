package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/langcoach/internal/exercise"
)

// memKV is an in-memory KV for testing.
type memKV struct {
	data   map[string]string
	getErr error
}

func newMemKV() *memKV { return &memKV{data: make(map[string]string)} }

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestLibrary(kv KV) *Library {
	n := 0
	base := time.UnixMilli(1_700_000_000_000)
	return New(kv, quietLogger(),
		WithIDs(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithClock(func() time.Time { return base.Add(time.Duration(n) * time.Second) }),
	)
}

func TestAddGameAssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(newMemKV())

	rec, err := lib.AddGame(ctx, GameRecord{Score: 2})
	if err != nil {
		t.Fatalf("AddGame: %v", err)
	}
	if rec.ID != "id-1" || rec.Timestamp == 0 {
		t.Errorf("unexpected record: %+v", rec)
	}

	games := lib.Games(ctx)
	if len(games) != 1 || games[0].ID != "id-1" || games[0].Score != 2 {
		t.Errorf("unexpected games: %+v", games)
	}
}

func TestHistoryCapNewestFirst(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(newMemKV())

	for i := 0; i < 25; i++ {
		if _, err := lib.AddGame(ctx, GameRecord{Score: i}); err != nil {
			t.Fatalf("AddGame %d: %v", i, err)
		}
	}

	games := lib.Games(ctx)
	if len(games) != MaxHistory {
		t.Fatalf("expected %d games, got %d", MaxHistory, len(games))
	}
	for i, g := range games {
		if want := 24 - i; g.Score != want {
			t.Errorf("games[%d].Score = %d, want %d", i, g.Score, want)
		}
	}
}

func TestFavoritesCapNewestFirst(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(newMemKV())

	for i := 1; i <= 35; i++ {
		req := exercise.DefaultRequest()
		req.Total = i
		if _, err := lib.AddFavorite(ctx, req); err != nil {
			t.Fatalf("AddFavorite %d: %v", i, err)
		}
	}

	favs := lib.Favorites(ctx)
	if len(favs) != MaxFavorites {
		t.Fatalf("expected %d favorites, got %d", MaxFavorites, len(favs))
	}
	if favs[0].FormData.Total != 35 || favs[len(favs)-1].FormData.Total != 6 {
		t.Errorf("unexpected order: first=%d last=%d", favs[0].FormData.Total, favs[len(favs)-1].FormData.Total)
	}
}

func TestDeleteGame(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(newMemKV())

	for i := 0; i < 3; i++ {
		if _, err := lib.AddGame(ctx, GameRecord{Score: i}); err != nil {
			t.Fatal(err)
		}
	}

	remaining, err := lib.DeleteGame(ctx, "id-2")
	if err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	if len(remaining) != 2 || remaining[0].ID != "id-3" || remaining[1].ID != "id-1" {
		t.Errorf("unexpected remaining: %+v", remaining)
	}
	if _, ok := lib.Game(ctx, "id-2"); ok {
		t.Error("deleted game still present")
	}

	// Unknown id leaves the list intact.
	remaining, err = lib.DeleteGame(ctx, "missing")
	if err != nil || len(remaining) != 2 {
		t.Errorf("unexpected result: %v, %d", err, len(remaining))
	}
}

func TestDeleteFavorite(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(newMemKV())

	a, _ := lib.AddFavorite(ctx, exercise.DefaultRequest())
	req := exercise.DefaultRequest()
	req.ExerciseLanguage = "German"
	b, _ := lib.AddFavorite(ctx, req)

	remaining, err := lib.DeleteFavorite(ctx, a.ID)
	if err != nil {
		t.Fatalf("DeleteFavorite: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != b.ID {
		t.Errorf("unexpected remaining: %+v", remaining)
	}
}

func TestCorruptDataReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.data[HistoryKey] = "{not json"
	kv.data[FavoritesKey] = `[{"id":"x","formData":{"difficulty":"Z9"}}]`
	lib := newTestLibrary(kv)

	if games := lib.Games(ctx); len(games) != 0 {
		t.Errorf("expected empty history, got %d", len(games))
	}
	if favs := lib.Favorites(ctx); len(favs) != 0 {
		t.Errorf("expected empty favorites, got %d", len(favs))
	}

	// Writing after a corrupt read starts a fresh list.
	if _, err := lib.AddGame(ctx, GameRecord{}); err != nil {
		t.Fatal(err)
	}
	if games := lib.Games(ctx); len(games) != 1 {
		t.Errorf("expected 1 game, got %d", len(games))
	}
}

func TestReadErrorReadsAsEmpty(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("disk on fire")
	lib := newTestLibrary(kv)

	if games := lib.Games(context.Background()); games == nil || len(games) != 0 {
		t.Errorf("expected empty non-nil list, got %v", games)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(newMemKV())
	_, _ = lib.AddGame(ctx, GameRecord{})
	_, _ = lib.AddFavorite(ctx, exercise.DefaultRequest())

	if err := lib.ClearHistory(ctx); err != nil {
		t.Fatal(err)
	}
	if len(lib.Games(ctx)) != 0 {
		t.Error("history not cleared")
	}
	if len(lib.Favorites(ctx)) != 1 {
		t.Error("favorites should be untouched")
	}
	if err := lib.ClearFavorites(ctx); err != nil {
		t.Fatal(err)
	}
	if len(lib.Favorites(ctx)) != 0 {
		t.Error("favorites not cleared")
	}
}

func TestBlanksFallback(t *testing.T) {
	g := GameRecord{Exercises: []exercise.Exercise{{Text: "___ y ___"}, {Text: "___"}}}
	if g.Blanks() != 3 {
		t.Errorf("Blanks = %d, want 3", g.Blanks())
	}
	g.TotalBlanks = 7
	if g.Blanks() != 7 {
		t.Errorf("Blanks = %d, want 7", g.Blanks())
	}
}

func TestMemoryKVBacksLibrary(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(NewMemoryKV())

	if _, err := lib.AddFavorite(ctx, exercise.DefaultRequest()); err != nil {
		t.Fatal(err)
	}
	if got := len(lib.Favorites(ctx)); got != 1 {
		t.Fatalf("expected 1 favorite, got %d", got)
	}
	if err := lib.ClearFavorites(ctx); err != nil {
		t.Fatal(err)
	}
	if got := len(lib.Favorites(ctx)); got != 0 {
		t.Errorf("expected no favorites after clear, got %d", got)
	}
}
