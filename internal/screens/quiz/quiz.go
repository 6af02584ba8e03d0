// Package quiz is the screen that plays a generated exercise set.
package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/langcoach/internal/exercise"
	"github.com/abhisek/langcoach/internal/library"
	qz "github.com/abhisek/langcoach/internal/quiz"
	"github.com/abhisek/langcoach/internal/router"
	"github.com/abhisek/langcoach/internal/screen"
	"github.com/abhisek/langcoach/internal/screens/results"
	"github.com/abhisek/langcoach/internal/ui/components"
	"github.com/abhisek/langcoach/internal/ui/layout"
)

const slotCharLimit = 40

// QuizScreen implements screen.Screen for an active quiz.
type QuizScreen struct {
	quiz  *qz.Quiz
	lib   *library.Library
	log   logrus.FieldLogger
	slots []components.TextInput
	focus int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a QuizScreen over a started quiz. The finished game is saved
// to lib.
func New(q *qz.Quiz, lib *library.Library, log logrus.FieldLogger) *QuizScreen {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &QuizScreen{quiz: q, lib: lib, log: log}
	s.loadSlots()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.focusSlot(0)
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// HandlesEscape keeps Esc from leaving a quiz half way; quizzes only move
// forward.
func (s *QuizScreen) HandlesEscape() bool {
	return true
}

func (s *QuizScreen) Status() string {
	form := s.quiz.Form()
	return form.ExerciseLanguage + " · " + string(form.Difficulty)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next blank"},
		{Key: "Enter", Description: s.nextLabel()},
	}
	if s.hintsEnabled() && !s.quiz.Hints().Exhausted() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+T", Description: "Hint"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+N", Description: s.nextLabel()})
}

func (s *QuizScreen) nextLabel() string {
	if s.quiz.IsLast() {
		return "Finish Quiz"
	}
	return "Next"
}

func (s *QuizScreen) hintsEnabled() bool {
	return s.quiz.Form().IncludeHints && s.quiz.Hints().Total() > 0
}

// loadSlots builds one input per blank of the active exercise.
func (s *QuizScreen) loadSlots() {
	n := exercise.BlankCount(s.quiz.Current().Text)
	s.slots = make([]components.TextInput, n)
	for i := range s.slots {
		s.slots[i] = components.NewTextInput("___", false, slotCharLimit)
		s.slots[i].SetValue(s.quiz.Answer(i))
	}
	s.focus = 0
}

func (s *QuizScreen) focusSlot(i int) tea.Cmd {
	if len(s.slots) == 0 {
		return nil
	}
	if s.focus < len(s.slots) {
		s.slots[s.focus].Blur()
	}
	s.focus = (i + len(s.slots)) % len(s.slots)
	return s.slots[s.focus].Focus()
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.quiz.Finished() {
		return s, nil
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab":
			return s, s.focusSlot(s.focus + 1)
		case "shift+tab":
			return s, s.focusSlot(s.focus - 1)
		case "enter":
			if s.focus < len(s.slots)-1 {
				return s, s.focusSlot(s.focus + 1)
			}
			return s, s.advance()
		case "ctrl+n":
			return s, s.advance()
		case "ctrl+t":
			if s.quiz.Form().IncludeHints {
				s.quiz.RevealHint()
			}
			return s, nil
		}
	}

	if len(s.slots) == 0 {
		return s, nil
	}
	var cmd tea.Cmd
	s.slots[s.focus], cmd = s.slots[s.focus].Update(msg)
	s.quiz.SetAnswer(s.focus, s.slots[s.focus].Value())
	return s, cmd
}

// advance moves to the next exercise, or finishes the quiz and hands the
// saved game to the results screen.
func (s *QuizScreen) advance() tea.Cmd {
	if !s.quiz.Next() {
		s.loadSlots()
		return s.focusSlot(0)
	}

	rec := s.quiz.Record()
	lib, log := s.lib, s.log
	return func() tea.Msg {
		if lib != nil {
			saved, err := lib.AddGame(context.Background(), rec)
			if err != nil {
				log.WithError(err).Error("save game failed")
			} else {
				rec = saved
			}
		}
		return router.ReplaceScreenMsg{Screen: results.New(rec, false, lib, log)}
	}
}
