// Package results shows the graded outcome of a quiz, either just finished
// or opened from history.
package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/langcoach/internal/library"
	"github.com/abhisek/langcoach/internal/router"
	"github.com/abhisek/langcoach/internal/scoring"
	"github.com/abhisek/langcoach/internal/screen"
	"github.com/abhisek/langcoach/internal/ui/components"
	"github.com/abhisek/langcoach/internal/ui/layout"
	"github.com/abhisek/langcoach/internal/ui/theme"
)

type deletedMsg struct {
	Err error
}

// ResultsScreen displays a completed game.
type ResultsScreen struct {
	rec        library.GameRecord
	historical bool
	lib        *library.Library
	log        logrus.FieldLogger
	offset     int
	errMsg     string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. historical marks a game opened from the
// history list, which adds its metadata and allows deleting it.
func New(rec library.GameRecord, historical bool, lib *library.Library, log logrus.FieldLogger) *ResultsScreen {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ResultsScreen{rec: rec, historical: historical, lib: lib, log: log}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: s.primaryAction()},
	}
	if s.historical {
		hints = append(hints, layout.KeyHint{Key: "D", Description: "Delete"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *ResultsScreen) primaryAction() string {
	if s.historical {
		return "Back to Form"
	}
	return "Start Over"
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deletedMsg:
		if msg.Err != nil {
			s.errMsg = "Could not delete this game"
			return s, nil
		}
		return s, popToRoot

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		case "pgup":
			s.offset -= 10
			if s.offset < 0 {
				s.offset = 0
			}
		case "pgdown":
			s.offset += 10
		case "enter":
			return s, popToRoot
		case "d", "D":
			if s.historical && s.lib != nil {
				return s, s.deleteGame()
			}
		}
	}
	return s, nil
}

func popToRoot() tea.Msg {
	return router.PopToRootMsg{}
}

func (s *ResultsScreen) deleteGame() tea.Cmd {
	id := s.rec.ID
	return func() tea.Msg {
		_, err := s.lib.DeleteGame(context.Background(), id)
		if err != nil {
			s.log.WithError(err).WithField("id", id).Error("delete game failed")
		}
		return deletedMsg{Err: err}
	}
}

func (s *ResultsScreen) View(width, height int) string {
	lines := s.lines(components.ContentWidth(width))

	maxOffset := len(lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	end := s.offset + height
	if end > len(lines) {
		end = len(lines)
	}

	body := strings.Join(lines[s.offset:end], "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

// lines renders the whole report one terminal row per entry.
func (s *ResultsScreen) lines(cw int) []string {
	rec := s.rec
	var b strings.Builder

	b.WriteString(theme.Title.Width(cw).Render("Quiz complete!"))
	b.WriteString("\n\n")

	if s.historical {
		form := rec.FormData
		meta := []string{
			"Language:    " + form.ExerciseLanguage,
			"Difficulty:  " + fmt.Sprintf("%s (%s)", form.Difficulty, form.Difficulty.Label()),
			"Topic:       " + form.TopicOrDefault(),
			"Date:        " + rec.Time().Format("Jan 02, 2006 15:04"),
		}
		b.WriteString(components.Card(theme.Body.Render(strings.Join(meta, "\n")), cw))
		b.WriteString("\n\n")
	}

	b.WriteString(components.ScoreMeter{Score: rec.Score, Total: rec.Blanks(), Width: cw}.View())
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Total time: %.1fs    Average per question: %.1fs", rec.TotalTime, rec.AvgTime)))
	b.WriteString("\n\n")

	wrap := lipgloss.NewStyle().Width(cw)
	for i, ex := range rec.Exercises {
		var given []string
		if i < len(rec.UserAnswers) {
			given = rec.UserAnswers[i]
		}

		b.WriteString(wrap.Bold(true).Foreground(theme.Text).Render(fmt.Sprintf("%d. %s", i+1, ex.Text)))
		b.WriteString("\n")

		for _, r := range scoring.Review(ex, rec.Answers, given) {
			answer := theme.Body.Render(r.UserAnswer)
			verdict := theme.Correct.Render(r.Verdict())
			switch {
			case strings.TrimSpace(r.UserAnswer) == "":
				answer = theme.Hint.Render("No answer")
				verdict = theme.Incorrect.Render(r.Verdict())
			case !r.Correct:
				answer = theme.WrongAnswer.Render(r.UserAnswer)
				verdict = theme.Incorrect.Render(r.Verdict())
			}
			b.WriteString(wrap.Render(fmt.Sprintf("   Blank %d: %s  ", r.Position+1, answer) + verdict))
			b.WriteString("\n")
			if r.Explanation != "" {
				b.WriteString(theme.Hint.Width(cw).Render("      " + r.Explanation))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString(theme.ErrorText.Render(s.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(components.Button{Label: s.primaryAction(), Focused: true}.View())
	return strings.Split(b.String(), "\n")
}
