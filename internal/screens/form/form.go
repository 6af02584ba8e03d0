// Package form is the root screen: it collects the generation request and
// starts quizzes, and links to history and favorites.
package form

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/langcoach/internal/exercise"
	"github.com/abhisek/langcoach/internal/library"
	qz "github.com/abhisek/langcoach/internal/quiz"
	"github.com/abhisek/langcoach/internal/router"
	"github.com/abhisek/langcoach/internal/screen"
	"github.com/abhisek/langcoach/internal/screens/favorites"
	"github.com/abhisek/langcoach/internal/screens/history"
	"github.com/abhisek/langcoach/internal/screens/quiz"
	"github.com/abhisek/langcoach/internal/ui/components"
	"github.com/abhisek/langcoach/internal/ui/layout"
)

// Generator produces an exercise set for a request.
type Generator interface {
	Generate(ctx context.Context, req exercise.Request) (exercise.Set, error)
}

// Deps are the collaborators of the form screen.
type Deps struct {
	Generator Generator
	Library   *library.Library
	Log       logrus.FieldLogger

	// Now is the quiz clock. Nil means time.Now.
	Now func() time.Time
}

// Focus order of the form.
const (
	fieldProvider = iota
	fieldExerciseLanguage
	fieldUserLanguage
	fieldTopic
	fieldTotal
	fieldDifficulty
	fieldBaseForm
	fieldHints
	buttonGenerate
	buttonSave
	buttonHistory
	buttonFavorites
	focusCount
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type generatedMsg struct {
	Req exercise.Request
	Set exercise.Set
	Err error
}

type favoritesLoadedMsg struct {
	Favorites []library.TemplateRecord
}

type savedMsg struct {
	Req       exercise.Request
	Favorites []library.TemplateRecord
	Err       error
}

type spinnerTickMsg time.Time

// FormScreen edits an exercise request.
type FormScreen struct {
	deps Deps

	provider         components.Choice
	exerciseLanguage components.TextInput
	userLanguage     components.TextInput
	topic            components.TextInput
	total            components.TextInput
	difficulty       components.Choice
	baseForm         components.Toggle
	hints            components.Toggle

	focus     int
	favs      []library.TemplateRecord
	lastSaved *exercise.Request

	loading bool
	frame   int
	errMsg  string
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)
var _ screen.StatusProvider = (*FormScreen)(nil)

// New creates a FormScreen filled with the default request.
func New(deps Deps) *FormScreen {
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}

	providers := make([]string, len(exercise.Providers))
	for i, p := range exercise.Providers {
		providers[i] = string(p)
	}
	levels := make([]string, len(exercise.Difficulties))
	for i, d := range exercise.Difficulties {
		levels[i] = difficultyOption(d)
	}

	s := &FormScreen{
		deps:             deps,
		provider:         components.NewChoice(providers, ""),
		exerciseLanguage: components.NewTextInput("e.g. Spanish", false, 40),
		userLanguage:     components.NewTextInput("e.g. English", false, 40),
		topic:            components.NewTextInput("General", false, 60),
		total:            components.NewTextInput("10", true, 2),
		difficulty:       components.NewChoice(levels, ""),
	}
	s.setRequest(exercise.DefaultRequest())
	return s
}

func difficultyOption(d exercise.Difficulty) string {
	return fmt.Sprintf("%s (%s)", d, d.Label())
}

func (s *FormScreen) Init() tea.Cmd {
	return tea.Batch(s.setFocus(fieldProvider), s.loadFavorites())
}

func (s *FormScreen) Title() string {
	return "New Quiz"
}

func (s *FormScreen) Status() string {
	if s.loading {
		return "Generating..."
	}
	return string(s.Request().Provider)
}

func (s *FormScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab/↑↓", Description: "Move"}}
	switch {
	case s.focus == fieldProvider || s.focus == fieldDifficulty:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Change"})
	case s.focus == fieldBaseForm || s.focus == fieldHints:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	case s.focus >= buttonGenerate:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Select"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Request builds the request from the current field values. The count is
// clamped to the accepted range; a blank count keeps the default.
func (s *FormScreen) Request() exercise.Request {
	return exercise.Request{
		Provider:         exercise.Provider(s.provider.Value()),
		ExerciseLanguage: s.exerciseLanguage.Value(),
		UserLanguage:     s.userLanguage.Value(),
		Topic:            s.topic.Value(),
		Total:            s.totalValue(),
		Difficulty:       exercise.Difficulties[s.difficulty.Selected],
		IncludeBaseForm:  s.baseForm.On,
		IncludeHints:     s.hints.On,
	}
}

func (s *FormScreen) totalValue() int {
	n, err := s.total.NumericValue()
	if err != nil {
		return exercise.DefaultRequest().Total
	}
	return min(max(n, exercise.MinTotal), exercise.MaxTotal)
}

func (s *FormScreen) setRequest(req exercise.Request) {
	s.provider.Select(string(req.Provider))
	s.exerciseLanguage.SetValue(req.ExerciseLanguage)
	s.userLanguage.SetValue(req.UserLanguage)
	s.topic.SetValue(req.Topic)
	s.total.SetValue(strconv.Itoa(req.Total))
	s.difficulty.Select(difficultyOption(req.Difficulty))
	s.baseForm.On = req.IncludeBaseForm
	s.hints.On = req.IncludeHints
}

// SaveStatus reports the state of the save button.
func (s *FormScreen) SaveStatus() library.SaveStatus {
	return library.StatusFor(s.Request(), s.lastSaved, s.favs)
}

func (s *FormScreen) loadFavorites() tea.Cmd {
	return func() tea.Msg {
		return favoritesLoadedMsg{Favorites: s.deps.Library.Favorites(context.Background())}
	}
}

func (s *FormScreen) setFocus(i int) tea.Cmd {
	if s.focus == fieldTotal && i != fieldTotal {
		s.total.SetValue(strconv.Itoa(s.totalValue()))
	}

	s.focus = (i + focusCount) % focusCount
	s.exerciseLanguage.Blur()
	s.userLanguage.Blur()
	s.topic.Blur()
	s.total.Blur()
	s.provider.Focused = s.focus == fieldProvider
	s.difficulty.Focused = s.focus == fieldDifficulty
	s.baseForm.Focused = s.focus == fieldBaseForm
	s.hints.Focused = s.focus == fieldHints

	if in := s.input(s.focus); in != nil {
		return in.Focus()
	}
	return nil
}

func (s *FormScreen) input(i int) *components.TextInput {
	switch i {
	case fieldExerciseLanguage:
		return &s.exerciseLanguage
	case fieldUserLanguage:
		return &s.userLanguage
	case fieldTopic:
		return &s.topic
	case fieldTotal:
		return &s.total
	}
	return nil
}

func (s *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case favoritesLoadedMsg:
		s.favs = msg.Favorites
		return s, nil

	case router.ResumedMsg:
		return s, s.loadFavorites()

	case favorites.TemplateSelectedMsg:
		req := msg.Template.FormData
		s.setRequest(req)
		s.lastSaved = &req
		s.errMsg = ""
		return s, s.loadFavorites()

	case savedMsg:
		if msg.Err != nil {
			s.errMsg = "Could not save to favorites"
			return s, nil
		}
		req := msg.Req
		s.lastSaved = &req
		s.favs = msg.Favorites
		return s, nil

	case generatedMsg:
		return s, s.handleGenerated(msg)

	case spinnerTickMsg:
		if !s.loading {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, s.tick()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus(s.focus + 1)
		case "shift+tab", "up":
			return s, s.setFocus(s.focus - 1)
		case "enter":
			if s.focus < buttonGenerate {
				return s, s.setFocus(s.focus + 1)
			}
			return s, s.activate(s.focus)
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldProvider:
		s.provider, cmd = s.provider.Update(msg)
	case fieldDifficulty:
		s.difficulty, cmd = s.difficulty.Update(msg)
	case fieldBaseForm:
		s.baseForm, cmd = s.baseForm.Update(msg)
	case fieldHints:
		s.hints, cmd = s.hints.Update(msg)
	default:
		if in := s.input(s.focus); in != nil {
			*in, cmd = in.Update(msg)
		}
	}
	return s, cmd
}

func (s *FormScreen) activate(button int) tea.Cmd {
	switch button {
	case buttonGenerate:
		return s.generate()
	case buttonSave:
		return s.save()
	case buttonHistory:
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: history.New(s.deps.Library, s.deps.Log)}
		}
	case buttonFavorites:
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: favorites.New(s.deps.Library, s.deps.Log)}
		}
	}
	return nil
}

func (s *FormScreen) generate() tea.Cmd {
	if s.loading {
		return nil
	}
	req := s.Request()
	s.loading = true
	s.errMsg = ""
	s.frame = 0

	gen := s.deps.Generator
	log := s.deps.Log
	return tea.Batch(s.tick(), func() tea.Msg {
		log.WithFields(logrus.Fields{
			"provider": req.Provider,
			"language": req.ExerciseLanguage,
			"level":    req.Difficulty,
			"total":    req.Total,
		}).Info("requesting exercises")
		set, err := gen.Generate(context.Background(), req)
		return generatedMsg{Req: req, Set: set, Err: err}
	})
}

func (s *FormScreen) handleGenerated(msg generatedMsg) tea.Cmd {
	s.loading = false
	if msg.Err != nil {
		s.deps.Log.WithError(msg.Err).Warn("exercise generation failed")
		s.errMsg = "Failed to generate exercises"
		return nil
	}

	q, err := qz.New(msg.Set, msg.Req, s.deps.Now)
	if err != nil {
		s.deps.Log.WithError(err).Warn("generated set is empty")
		s.errMsg = "Failed to generate exercises"
		return nil
	}

	next := quiz.New(q, s.deps.Library, s.deps.Log)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *FormScreen) save() tea.Cmd {
	if !s.SaveStatus().Enabled() {
		return nil
	}
	req := s.Request()
	lib := s.deps.Library
	return func() tea.Msg {
		if _, err := lib.AddFavorite(context.Background(), req); err != nil {
			return savedMsg{Err: err}
		}
		return savedMsg{Req: req, Favorites: lib.Favorites(context.Background())}
	}
}

func (s *FormScreen) tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
