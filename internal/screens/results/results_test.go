package results

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/langcoach/internal/exercise"
	"github.com/abhisek/langcoach/internal/library"
	"github.com/abhisek/langcoach/internal/router"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testRecord() library.GameRecord {
	return library.GameRecord{
		ID:        "game-1",
		Timestamp: 1_700_000_000_000,
		FormData:  exercise.DefaultRequest(),
		Exercises: []exercise.Exercise{
			{ID: 0, Text: "Ayer yo ___ al cine."},
			{ID: 1, Text: "Ella ___ feliz y ___ cansada."},
		},
		Answers: []exercise.Answer{
			{ExerciseID: 0, Position: 0, Answer: "fui", Explanation: "Preterite of ir."},
			{ExerciseID: 1, Position: 0, Answer: "está"},
			{ExerciseID: 1, Position: 0, Answer: "es"},
			{ExerciseID: 1, Position: 1, Answer: "está"},
		},
		UserAnswers: [][]string{{"voy"}, {"es", ""}},
		Timings:     []float64{3.25, 4.5},
		Score:       1,
		TotalTime:   7.75,
		AvgTime:     3.875,
		TotalBlanks: 3,
	}
}

func TestViewShowsScoreAndReview(t *testing.T) {
	s := New(testRecord(), false, nil, quietLogger())
	view := ansi.Strip(s.View(80, 200))

	for _, want := range []string{
		"Score: 1/3",
		"Total time: 7.8s",
		"Average per question: 3.9s",
		"Blank 1: voy",
		"Correct: fui",
		"Preterite of ir.",
		"Correct (all valid: está / es)",
		"Blank 2: No answer",
		"Start Over",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Topic:") {
		t.Error("fresh results should not show the history block")
	}
}

func TestHistoricalView(t *testing.T) {
	s := New(testRecord(), true, nil, quietLogger())
	view := s.View(80, 200)

	for _, want := range []string{"Language:    Spanish", "A2 (Elementary)", "Past and Future Tenses", "Back to Form"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEnterReturnsToForm(t *testing.T) {
	s := New(testRecord(), false, nil, quietLogger())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
}

func TestDeleteHistoricalGame(t *testing.T) {
	ctx := context.Background()
	lib := library.New(library.NewMemoryKV(), quietLogger())
	saved, err := lib.AddGame(ctx, testRecord())
	if err != nil {
		t.Fatal(err)
	}

	s := New(saved, true, lib, quietLogger())
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'd', Text: "d"})
	if cmd == nil {
		t.Fatal("expected delete command")
	}
	_, cmd = s.Update(cmd())
	if cmd == nil {
		t.Fatal("expected navigation after delete")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg after delete")
	}
	if n := len(lib.Games(ctx)); n != 0 {
		t.Errorf("expected history empty, got %d", n)
	}
}

func TestDeleteIgnoredForFreshResults(t *testing.T) {
	lib := library.New(library.NewMemoryKV(), quietLogger())
	s := New(testRecord(), false, lib, quietLogger())
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'd', Text: "d"}); cmd != nil {
		t.Error("fresh results cannot be deleted")
	}
}

func TestScrollIsClamped(t *testing.T) {
	s := New(testRecord(), false, nil, quietLogger())
	for i := 0; i < 100; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	view := s.View(80, 5)
	if view == "" {
		t.Error("expected content at the bottom of the report")
	}
	if s.offset == 100 {
		t.Error("offset should be clamped to the report length")
	}
}
