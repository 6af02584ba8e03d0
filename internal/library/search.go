package library

import (
	"strings"

	"github.com/abhisek/langcoach/internal/exercise"
)

// Matches reports whether term is a case-insensitive substring of the
// request's topic, exercise language or difficulty. An empty term matches
// everything.
func Matches(req exercise.Request, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{req.Topic, req.ExerciseLanguage, string(req.Difficulty)} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// FilterGames returns the games whose form matches term, preserving order.
func FilterGames(games []GameRecord, term string) []GameRecord {
	return remove(games, func(g GameRecord) bool { return !Matches(g.FormData, term) })
}

// FilterFavorites returns the templates whose form matches term, preserving
// order.
func FilterFavorites(favs []TemplateRecord, term string) []TemplateRecord {
	return remove(favs, func(f TemplateRecord) bool { return !Matches(f.FormData, term) })
}

// Title is the list heading for a request, e.g. "Spanish - A2".
func Title(req exercise.Request) string {
	return req.ExerciseLanguage + " - " + string(req.Difficulty)
}

// SaveStatus describes whether the current form can be saved as a favorite.
type SaveStatus int

const (
	SaveAvailable SaveStatus = iota
	SaveAlreadyFavorite
	SaveUnchanged
)

// StatusFor computes the save status of form. lastSaved is the form most
// recently saved or loaded from favorites, or nil.
func StatusFor(form exercise.Request, lastSaved *exercise.Request, favs []TemplateRecord) SaveStatus {
	if _, ok := FindFavorite(favs, form); ok {
		return SaveAlreadyFavorite
	}
	if lastSaved != nil && *lastSaved == form {
		return SaveUnchanged
	}
	return SaveAvailable
}

// Label is the save button caption for the status.
func (s SaveStatus) Label() string {
	switch s {
	case SaveAlreadyFavorite:
		return "★ Already in Favorites"
	case SaveUnchanged:
		return "✓ Saved"
	default:
		return "⭐ Save to Favorites"
	}
}

// Enabled reports whether saving is allowed.
func (s SaveStatus) Enabled() bool {
	return s == SaveAvailable
}
