package form

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/langcoach/internal/exercise"
	"github.com/abhisek/langcoach/internal/library"
	"github.com/abhisek/langcoach/internal/router"
	"github.com/abhisek/langcoach/internal/screens/favorites"
	"github.com/abhisek/langcoach/internal/screens/quiz"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type stubGenerator struct {
	set   exercise.Set
	err   error
	calls int
	last  exercise.Request
}

func (g *stubGenerator) Generate(_ context.Context, req exercise.Request) (exercise.Set, error) {
	g.calls++
	g.last = req
	return g.set, g.err
}

func oneExercise() exercise.Set {
	return exercise.Set{
		Exercises: []exercise.Exercise{{ID: 0, Text: "Yo ___ español."}},
		Answers:   []exercise.Answer{{ExerciseID: 0, Position: 0, Answer: "hablo"}},
	}
}

func newTestScreen(t *testing.T, gen Generator) (*FormScreen, *library.Library) {
	t.Helper()
	lib := library.New(library.NewMemoryKV(), quietLogger())
	s := New(Deps{Generator: gen, Library: lib, Log: quietLogger()})
	s.Init()
	s.Update(s.loadFavorites()())
	return s, lib
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(s *FormScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(s *FormScreen, msg tea.KeyPressMsg) tea.Cmd {
	_, cmd := s.Update(msg)
	return cmd
}

func focusOn(s *FormScreen, field int) {
	s.setFocus(field)
}

func TestDefaults(t *testing.T) {
	s, _ := newTestScreen(t, &stubGenerator{})
	if got := s.Request(); got != exercise.DefaultRequest() {
		t.Errorf("expected default request, got %+v", got)
	}
	view := s.View(100, 40)
	for _, want := range []string{"Spanish", "A2 (Elementary)", "⭐ Save to Favorites", "Generate Exercises"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestFocusWraps(t *testing.T) {
	s, _ := newTestScreen(t, &stubGenerator{})
	press(s, key(tea.KeyTab))
	if s.focus != fieldExerciseLanguage || !s.exerciseLanguage.Focused() {
		t.Fatalf("expected exercise language focused, got %d", s.focus)
	}
	press(s, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	press(s, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.focus != buttonFavorites {
		t.Errorf("expected focus to wrap to the last button, got %d", s.focus)
	}
}

func TestEnterMovesBetweenFields(t *testing.T) {
	s, _ := newTestScreen(t, &stubGenerator{})
	focusOn(s, fieldTopic)
	press(s, key(tea.KeyEnter))
	if s.focus != fieldTotal {
		t.Errorf("expected total focused, got %d", s.focus)
	}
}

func TestChoiceAndToggle(t *testing.T) {
	s, _ := newTestScreen(t, &stubGenerator{})
	press(s, key(tea.KeyRight))
	if s.Request().Provider != exercise.ProviderOpenAI {
		t.Errorf("expected OPENAI, got %s", s.Request().Provider)
	}

	focusOn(s, fieldDifficulty)
	press(s, key(tea.KeyRight))
	if s.Request().Difficulty != exercise.B1 {
		t.Errorf("expected B1, got %s", s.Request().Difficulty)
	}

	focusOn(s, fieldHints)
	press(s, key(tea.KeySpace))
	if s.Request().IncludeHints {
		t.Error("expected hints toggled off")
	}
}

func TestTotalIsClamped(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"99", 50},
		{"0", 1},
		{"7", 7},
		{"", 10},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			s, _ := newTestScreen(t, &stubGenerator{})
			focusOn(s, fieldTotal)
			s.total.SetValue("")
			typeText(s, tc.input)
			if got := s.Request().Total; got != tc.want {
				t.Errorf("Total = %d, want %d", got, tc.want)
			}
			press(s, key(tea.KeyTab))
			if s.total.Value() != strconv.Itoa(tc.want) {
				t.Errorf("expected field normalized to %d, got %q", tc.want, s.total.Value())
			}
		})
	}
}

func TestNumericFieldRejectsLetters(t *testing.T) {
	s, _ := newTestScreen(t, &stubGenerator{})
	focusOn(s, fieldTotal)
	s.total.SetValue("")
	typeText(s, "1a2")
	if s.total.Value() != "12" {
		t.Errorf("expected 12, got %q", s.total.Value())
	}
}

func TestGenerateStartsQuiz(t *testing.T) {
	gen := &stubGenerator{set: oneExercise()}
	s, _ := newTestScreen(t, gen)
	focusOn(s, buttonGenerate)

	cmd := press(s, key(tea.KeyEnter))
	if cmd == nil || !s.loading {
		t.Fatal("expected loading with a command")
	}
	if !strings.Contains(s.View(100, 40), "Generating exercises...") {
		t.Error("expected loading line")
	}
	if again := press(s, key(tea.KeyEnter)); again != nil {
		t.Error("submit must be ignored while loading")
	}

	_, next := s.Update(s.generatedFor(t, gen))
	if s.loading {
		t.Error("expected loading cleared")
	}
	if next == nil {
		t.Fatal("expected a navigation command")
	}
	push, ok := next().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", next())
	}
	if _, ok := push.Screen.(*quiz.QuizScreen); !ok {
		t.Errorf("expected quiz screen, got %T", push.Screen)
	}
	if gen.last != exercise.DefaultRequest() {
		t.Errorf("generator got %+v", gen.last)
	}
}

// generatedFor runs the generator the way the form's command does.
func (s *FormScreen) generatedFor(t *testing.T, gen *stubGenerator) generatedMsg {
	t.Helper()
	req := s.Request()
	set, err := gen.Generate(context.Background(), req)
	return generatedMsg{Req: req, Set: set, Err: err}
}

func TestGenerateFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	s, _ := newTestScreen(t, gen)
	focusOn(s, buttonGenerate)
	press(s, key(tea.KeyEnter))

	_, next := s.Update(s.generatedFor(t, gen))
	if next != nil {
		t.Error("no navigation on failure")
	}
	if !strings.Contains(s.View(100, 40), "Failed to generate exercises") {
		t.Error("expected failure message")
	}
}

func TestEmptySetIsAFailure(t *testing.T) {
	gen := &stubGenerator{}
	s, _ := newTestScreen(t, gen)
	_, next := s.Update(s.generatedFor(t, gen))
	if next != nil || s.errMsg != "Failed to generate exercises" {
		t.Errorf("expected failure, got %q", s.errMsg)
	}
}

func TestSaveToFavorites(t *testing.T) {
	s, lib := newTestScreen(t, &stubGenerator{})
	focusOn(s, buttonSave)

	cmd := press(s, key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected save command")
	}
	s.Update(cmd())

	if len(lib.Favorites(context.Background())) != 1 {
		t.Fatal("expected one favorite")
	}
	if s.SaveStatus() != library.SaveAlreadyFavorite {
		t.Errorf("expected already-favorite, got %v", s.SaveStatus())
	}
	if !strings.Contains(s.View(100, 40), "★ Already in Favorites") {
		t.Error("expected disabled save label")
	}
	if press(s, key(tea.KeyEnter)) != nil {
		t.Error("saving twice must be a no-op")
	}

	focusOn(s, fieldTopic)
	typeText(s, "!")
	if s.SaveStatus() != library.SaveAvailable {
		t.Errorf("expected save available after edit, got %v", s.SaveStatus())
	}
}

func TestTemplateSelectedLoadsForm(t *testing.T) {
	s, _ := newTestScreen(t, &stubGenerator{})

	tpl := exercise.DefaultRequest()
	tpl.ExerciseLanguage = "German"
	tpl.Difficulty = exercise.C1
	tpl.Total = 5
	s.Update(favorites.TemplateSelectedMsg{Template: library.TemplateRecord{ID: "x", FormData: tpl}})

	if s.Request() != tpl {
		t.Errorf("expected template loaded, got %+v", s.Request())
	}
	if s.SaveStatus() != library.SaveUnchanged {
		t.Errorf("expected unchanged, got %v", s.SaveStatus())
	}
	if !strings.Contains(s.View(100, 40), "✓ Saved") {
		t.Error("expected saved label")
	}
}

func TestNavigationButtons(t *testing.T) {
	s, _ := newTestScreen(t, &stubGenerator{})

	for _, b := range []int{buttonHistory, buttonFavorites} {
		focusOn(s, b)
		cmd := press(s, key(tea.KeyEnter))
		if cmd == nil {
			t.Fatalf("button %d: expected command", b)
		}
		push, ok := cmd().(router.PushScreenMsg)
		if !ok {
			t.Fatalf("button %d: expected push", b)
		}
		want := map[int]string{buttonHistory: "History", buttonFavorites: "Favorites"}[b]
		if push.Screen.Title() != want {
			t.Errorf("expected %s, got %s", want, push.Screen.Title())
		}
	}
}

func TestResumeReloadsFavorites(t *testing.T) {
	s, lib := newTestScreen(t, &stubGenerator{})
	if _, err := lib.AddFavorite(context.Background(), s.Request()); err != nil {
		t.Fatal(err)
	}
	_, cmd := s.Update(router.ResumedMsg{})
	s.Update(cmd())
	if s.SaveStatus() != library.SaveAlreadyFavorite {
		t.Errorf("expected favorites reloaded, got %v", s.SaveStatus())
	}
}
