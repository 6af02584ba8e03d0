package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/langcoach/internal/library"
	"github.com/abhisek/langcoach/internal/router"
	"github.com/abhisek/langcoach/internal/screen"
	"github.com/abhisek/langcoach/internal/screens/results"
	"github.com/abhisek/langcoach/internal/ui/components"
	"github.com/abhisek/langcoach/internal/ui/layout"
	"github.com/abhisek/langcoach/internal/ui/theme"
)

type historyLoadedMsg struct {
	Games []library.GameRecord
	Err   error
}

// HistoryScreen lists past games, newest first, with a search box.
type HistoryScreen struct {
	lib    *library.Library
	log    logrus.FieldLogger
	games  []library.GameRecord
	search components.TextInput
	menu   components.Menu
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(lib *library.Library, log logrus.FieldLogger) *HistoryScreen {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &HistoryScreen{
		lib:    lib,
		log:    log,
		search: components.NewTextInput("Search by topic, language or level", false, 60),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return tea.Batch(s.search.Focus(), s.load())
}

func (s *HistoryScreen) load() tea.Cmd {
	return func() tea.Msg {
		return historyLoadedMsg{Games: s.lib.Games(context.Background())}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = "Could not delete this game"
		} else {
			s.games = msg.Games
		}
		s.loaded = true
		s.rebuild()
		return s, nil

	case router.ResumedMsg:
		return s, s.load()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "down", "enter":
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		case "ctrl+d":
			return s, s.deleteSelected()
		}
	}

	before := s.search.Value()
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	if s.search.Value() != before {
		s.rebuild()
	}
	return s, cmd
}

// rebuild refreshes the menu from the games matching the search box.
func (s *HistoryScreen) rebuild() {
	filtered := library.FilterGames(s.games, s.search.Value())
	items := make([]components.MenuItem, 0, len(filtered))
	for _, g := range filtered {
		rec := g
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("%s · %s", library.Title(rec.FormData), rec.FormData.TopicOrDefault()),
			Detail: fmt.Sprintf("%s   Score %d/%d",
				rec.Time().Format("Jan 02, 2006 15:04"), rec.Score, rec.Blanks()),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: results.New(rec, true, s.lib, s.log)}
				}
			},
		})
	}

	selected := s.menu.Selected
	s.menu = components.NewMenu(items)
	s.menu.Select(selected)
}

func (s *HistoryScreen) selectedID() (string, bool) {
	filtered := library.FilterGames(s.games, s.search.Value())
	if s.menu.Selected < 0 || s.menu.Selected >= len(filtered) {
		return "", false
	}
	return filtered[s.menu.Selected].ID, true
}

func (s *HistoryScreen) deleteSelected() tea.Cmd {
	id, ok := s.selectedID()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		games, err := s.lib.DeleteGame(context.Background(), id)
		if err != nil {
			s.log.WithError(err).WithField("id", id).Error("delete game failed")
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Games: games}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.Card(s.search.View(), cw))
	b.WriteString("\n\n")

	switch {
	case !s.loaded:
		b.WriteString(theme.Hint.Render("Loading history..."))
	case len(s.games) == 0:
		b.WriteString(theme.Hint.Render("No games yet. Finish a quiz to see it here."))
	case len(s.menu.Items) == 0:
		b.WriteString(theme.Hint.Render("No games match your search."))
	default:
		b.WriteString(s.menu.View(height - 6))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}
