package library

import (
	"testing"

	"github.com/abhisek/langcoach/internal/exercise"
)

func TestMatches(t *testing.T) {
	req := exercise.Request{ExerciseLanguage: "Spanish", Topic: "Past Tenses", Difficulty: exercise.B1}

	tests := []struct {
		term string
		want bool
	}{
		{"", true},
		{"span", true},
		{"PAST", true},
		{"b1", true},
		{"french", false},
		{"english", false},
	}

	for _, tc := range tests {
		if got := Matches(req, tc.term); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.term, got, tc.want)
		}
	}
}

func TestFilterGames(t *testing.T) {
	games := []GameRecord{
		{ID: "1", FormData: exercise.Request{ExerciseLanguage: "Spanish", Difficulty: exercise.A2}},
		{ID: "2", FormData: exercise.Request{ExerciseLanguage: "German", Difficulty: exercise.C1}},
		{ID: "3", FormData: exercise.Request{ExerciseLanguage: "Spanish", Difficulty: exercise.C1}},
	}

	got := FilterGames(games, "spanish")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("unexpected filter result: %+v", got)
	}
	if got := FilterGames(games, "c1"); len(got) != 2 {
		t.Errorf("expected 2 C1 games, got %d", len(got))
	}
}

func TestFilterFavorites(t *testing.T) {
	favs := []TemplateRecord{
		{ID: "a", FormData: exercise.Request{Topic: "Food"}},
		{ID: "b", FormData: exercise.Request{Topic: "Travel"}},
	}
	if got := FilterFavorites(favs, "trav"); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("unexpected filter result: %+v", got)
	}
}

func TestTitle(t *testing.T) {
	req := exercise.Request{ExerciseLanguage: "Italian", Difficulty: exercise.C2}
	if got := Title(req); got != "Italian - C2" {
		t.Errorf("Title = %q", got)
	}
}

func TestStatusFor(t *testing.T) {
	form := exercise.DefaultRequest()
	other := form
	other.Topic = "Food"

	tests := []struct {
		name      string
		lastSaved *exercise.Request
		favs      []TemplateRecord
		want      SaveStatus
		label     string
	}{
		{"fresh form", nil, nil, SaveAvailable, "⭐ Save to Favorites"},
		{"already favorite", nil, []TemplateRecord{{FormData: form}}, SaveAlreadyFavorite, "★ Already in Favorites"},
		{"unchanged since save", &form, nil, SaveUnchanged, "✓ Saved"},
		{"changed since save", &other, nil, SaveAvailable, "⭐ Save to Favorites"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusFor(form, tt.lastSaved, tt.favs)
			if got != tt.want {
				t.Errorf("StatusFor = %v, want %v", got, tt.want)
			}
			if got.Label() != tt.label {
				t.Errorf("Label = %q, want %q", got.Label(), tt.label)
			}
			if got.Enabled() != (tt.want == SaveAvailable) {
				t.Errorf("Enabled = %v", got.Enabled())
			}
		})
	}
}
