// Package library persists quiz history and favorite templates as two
// capped, newest-first lists in a key/value store.
package library

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/langcoach/internal/exercise"
)

const (
	HistoryKey   = "languageCoachHistory"
	FavoritesKey = "languageCoachFavorites"

	MaxHistory   = 20
	MaxFavorites = 30
)

// KV is the key/value text store the lists are written to.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Library reads and writes the history and favorites lists. Every write
// replaces the stored value wholesale.
type Library struct {
	kv    KV
	log   logrus.FieldLogger
	now   func() time.Time
	newID func() string
}

// Option configures a Library.
type Option func(*Library)

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Library) { l.now = now }
}

// WithIDs overrides the record ID generator.
func WithIDs(newID func() string) Option {
	return func(l *Library) { l.newID = newID }
}

// New creates a Library over kv.
func New(kv KV, log logrus.FieldLogger, opts ...Option) *Library {
	if log == nil {
		log = logrus.StandardLogger()
	}
	l := &Library{
		kv:    kv,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Games returns the history, newest first. Unreadable data yields an empty
// list.
func (l *Library) Games(ctx context.Context) []GameRecord {
	return readList[GameRecord](ctx, l, HistoryKey)
}

// Game returns the history entry with the given id.
func (l *Library) Game(ctx context.Context, id string) (GameRecord, bool) {
	for _, g := range l.Games(ctx) {
		if g.ID == id {
			return g, true
		}
	}
	return GameRecord{}, false
}

// AddGame prepends rec to the history, evicting entries past MaxHistory.
// ID and Timestamp are assigned when empty.
func (l *Library) AddGame(ctx context.Context, rec GameRecord) (GameRecord, error) {
	if rec.ID == "" {
		rec.ID = l.newID()
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = l.now().UnixMilli()
	}
	games := prepend(rec, l.Games(ctx), MaxHistory)
	if err := writeList(ctx, l, HistoryKey, games); err != nil {
		return GameRecord{}, err
	}
	return rec, nil
}

// DeleteGame removes the entry with the given id and returns the remainder.
func (l *Library) DeleteGame(ctx context.Context, id string) ([]GameRecord, error) {
	games := remove(l.Games(ctx), func(g GameRecord) bool { return g.ID == id })
	if err := writeList(ctx, l, HistoryKey, games); err != nil {
		return nil, err
	}
	return games, nil
}

// Favorites returns the saved templates, newest first.
func (l *Library) Favorites(ctx context.Context) []TemplateRecord {
	return readList[TemplateRecord](ctx, l, FavoritesKey)
}

// AddFavorite saves req as a new template, evicting entries past
// MaxFavorites.
func (l *Library) AddFavorite(ctx context.Context, req exercise.Request) (TemplateRecord, error) {
	rec := TemplateRecord{
		ID:        l.newID(),
		Timestamp: l.now().UnixMilli(),
		FormData:  req,
	}
	favs := prepend(rec, l.Favorites(ctx), MaxFavorites)
	if err := writeList(ctx, l, FavoritesKey, favs); err != nil {
		return TemplateRecord{}, err
	}
	return rec, nil
}

// DeleteFavorite removes the template with the given id and returns the
// remainder.
func (l *Library) DeleteFavorite(ctx context.Context, id string) ([]TemplateRecord, error) {
	favs := remove(l.Favorites(ctx), func(f TemplateRecord) bool { return f.ID == id })
	if err := writeList(ctx, l, FavoritesKey, favs); err != nil {
		return nil, err
	}
	return favs, nil
}

// FindFavorite returns the template whose form equals req.
func FindFavorite(favs []TemplateRecord, req exercise.Request) (TemplateRecord, bool) {
	for _, f := range favs {
		if f.FormData == req {
			return f, true
		}
	}
	return TemplateRecord{}, false
}

// ClearHistory removes every history entry.
func (l *Library) ClearHistory(ctx context.Context) error {
	return l.kv.Delete(ctx, HistoryKey)
}

// ClearFavorites removes every saved template.
func (l *Library) ClearFavorites(ctx context.Context) error {
	return l.kv.Delete(ctx, FavoritesKey)
}

func readList[T any](ctx context.Context, l *Library, key string) []T {
	raw, ok, err := l.kv.Get(ctx, key)
	if err != nil {
		l.log.WithError(err).WithField("key", key).Warn("read failed, treating list as empty")
		return []T{}
	}
	if !ok || raw == "" {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		l.log.WithError(err).WithField("key", key).Warn("stored list is corrupt, treating as empty")
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

func writeList[T any](ctx context.Context, l *Library, key string, list []T) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := l.kv.Put(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func prepend[T any](item T, list []T, limit int) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	out = append(out, list...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func remove[T any](list []T, match func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if !match(v) {
			out = append(out, v)
		}
	}
	return out
}
