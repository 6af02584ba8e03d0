package quiz

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/langcoach/internal/exercise"
	"github.com/abhisek/langcoach/internal/library"
	qz "github.com/abhisek/langcoach/internal/quiz"
	"github.com/abhisek/langcoach/internal/router"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func typeText(s *QuizScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testSet() exercise.Set {
	return exercise.Set{
		Exercises: []exercise.Exercise{
			{ID: 0, Text: "Mañana ___ pizza y ___ temprano."},
			{ID: 1, Text: "Ayer yo ___ al cine."},
		},
		Answers: []exercise.Answer{
			{ExerciseID: 0, Position: 0, Answer: "comeré"},
			{ExerciseID: 0, Position: 1, Answer: "dormiré"},
			{ExerciseID: 1, Position: 0, Answer: "fui"},
		},
		Hints: []exercise.Hint{
			{ExerciseID: 0, Evidence: 2, Hint: "Both verbs are in the future."},
			{ExerciseID: 0, Evidence: 1, Hint: "Think about tomorrow."},
		},
	}
}

func newTestScreen(t *testing.T, form exercise.Request) (*QuizScreen, *library.Library) {
	t.Helper()
	clock := time.Unix(1000, 0)
	q, err := qz.New(testSet(), form, func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})
	if err != nil {
		t.Fatal(err)
	}
	lib := library.New(library.NewMemoryKV(), quietLogger())
	s := New(q, lib, quietLogger())
	s.Init()
	return s, lib
}

func TestSlotsMatchMarkers(t *testing.T) {
	s, _ := newTestScreen(t, exercise.DefaultRequest())
	if len(s.slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(s.slots))
	}
	if !s.slots[0].Focused() {
		t.Error("first slot should be focused")
	}
	if view := s.View(80, 24); !strings.Contains(view, "Exercise 1 of 2") {
		t.Error("expected exercise header")
	}
}

func TestEnterMovesThroughSlotsThenAdvances(t *testing.T) {
	s, _ := newTestScreen(t, exercise.DefaultRequest())

	typeText(s, "comeré")
	s.Update(specialKey(tea.KeyEnter))
	if s.focus != 1 {
		t.Fatalf("expected focus on slot 1, got %d", s.focus)
	}
	typeText(s, "dormiré")
	s.Update(specialKey(tea.KeyEnter))

	if s.quiz.Index() != 1 {
		t.Fatalf("expected exercise 2, got index %d", s.quiz.Index())
	}
	if len(s.slots) != 1 || s.focus != 0 {
		t.Errorf("expected one focused slot, got %d slots focus %d", len(s.slots), s.focus)
	}
}

func TestTabWrapsAroundSlots(t *testing.T) {
	s, _ := newTestScreen(t, exercise.DefaultRequest())
	s.Update(specialKey(tea.KeyTab))
	s.Update(specialKey(tea.KeyTab))
	if s.focus != 0 {
		t.Errorf("expected focus to wrap to 0, got %d", s.focus)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.focus != 1 {
		t.Errorf("expected shift+tab to wrap to 1, got %d", s.focus)
	}
}

func TestHintsRevealInOrder(t *testing.T) {
	s, _ := newTestScreen(t, exercise.DefaultRequest())

	view := s.View(80, 30)
	if !strings.Contains(view, "Show Next Hint (1/2)") {
		t.Fatal("expected hint action")
	}

	s.Update(ctrl('t'))
	view = s.View(80, 30)
	if !strings.Contains(view, "Think about tomorrow.") {
		t.Error("expected lowest-evidence hint first")
	}
	if !strings.Contains(view, "Show Next Hint (2/2)") {
		t.Error("expected updated hint action")
	}

	s.Update(ctrl('t'))
	view = s.View(80, 30)
	if strings.Contains(view, "Show Next Hint") {
		t.Error("hint action should disappear when exhausted")
	}
}

func TestHintsHiddenWhenDisabled(t *testing.T) {
	form := exercise.DefaultRequest()
	form.IncludeHints = false
	s, _ := newTestScreen(t, form)

	s.Update(ctrl('t'))
	if strings.Contains(s.View(80, 30), "Hint") {
		t.Error("hints should not be shown")
	}
}

func TestFinishSavesOneGameAndShowsResults(t *testing.T) {
	s, lib := newTestScreen(t, exercise.DefaultRequest())

	typeText(s, "comeré")
	s.Update(ctrl('n'))
	if got := s.nextLabel(); got != "Finish Quiz" {
		t.Errorf("last exercise label = %q", got)
	}
	typeText(s, "fui")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected finish command")
	}

	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if msg.Screen.Title() != "Results" {
		t.Errorf("expected results screen, got %q", msg.Screen.Title())
	}

	games := lib.Games(context.Background())
	if len(games) != 1 {
		t.Fatalf("expected 1 saved game, got %d", len(games))
	}
	if games[0].Score != 2 || games[0].TotalBlanks != 3 {
		t.Errorf("score %d/%d, want 2/3", games[0].Score, games[0].TotalBlanks)
	}

	// Further input after finishing is ignored.
	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("expected no command after finishing")
	}
	if n := len(lib.Games(context.Background())); n != 1 {
		t.Errorf("expected exactly one game, got %d", n)
	}
}

func TestEscapeStaysInQuiz(t *testing.T) {
	s, _ := newTestScreen(t, exercise.DefaultRequest())
	if !s.HandlesEscape() {
		t.Fatal("quiz must handle Esc")
	}
	s.Update(specialKey(tea.KeyEscape))
	if s.quiz.Index() != 0 || s.quiz.Finished() {
		t.Error("Esc must not advance")
	}
}
