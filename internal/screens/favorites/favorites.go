// Package favorites lists saved request templates and loads one back into
// the form.
package favorites

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
	"github.com/abhisek/langcoach/internal/ui/components"
	"github.com/abhisek/langcoach/internal/ui/layout"
	"github.com/abhisek/langcoach/internal/ui/theme"
)

// TemplateSelectedMsg carries the favorite chosen by the user to the form.
type TemplateSelectedMsg struct {
	Template library.TemplateRecord
}

type favoritesLoadedMsg struct {
	Favorites []library.TemplateRecord
	Err       error
}

// FavoritesScreen lists saved templates, newest first, with a search box.
type FavoritesScreen struct {
	lib    *library.Library
	log    logrus.FieldLogger
	favs   []library.TemplateRecord
	search components.TextInput
	menu   components.Menu
	loaded bool
	errMsg string
}

var _ screen.Screen = (*FavoritesScreen)(nil)
var _ screen.KeyHintProvider = (*FavoritesScreen)(nil)

// New creates a new FavoritesScreen.
func New(lib *library.Library, log logrus.FieldLogger) *FavoritesScreen {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FavoritesScreen{
		lib:    lib,
		log:    log,
		search: components.NewTextInput("Search by topic, language or level", false, 60),
	}
}

func (s *FavoritesScreen) Init() tea.Cmd {
	return tea.Batch(s.search.Focus(), s.load())
}

func (s *FavoritesScreen) load() tea.Cmd {
	return func() tea.Msg {
		return favoritesLoadedMsg{Favorites: s.lib.Favorites(context.Background())}
	}
}

func (s *FavoritesScreen) Title() string {
	return "Favorites"
}

func (s *FavoritesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Load"},
		{Key: "Ctrl+D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FavoritesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case favoritesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = "Could not delete this favorite"
		} else {
			s.favs = msg.Favorites
		}
		s.loaded = true
		s.rebuild()
		return s, nil

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

func (s *FavoritesScreen) filtered() []library.TemplateRecord {
	return library.FilterFavorites(s.favs, s.search.Value())
}

func (s *FavoritesScreen) rebuild() {
	filtered := s.filtered()
	items := make([]components.MenuItem, 0, len(filtered))
	for _, f := range filtered {
		tpl := f
		form := tpl.FormData
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("%s · %s", library.Title(form), form.TopicOrDefault()),
			Detail: fmt.Sprintf("%s   %d exercises   %s",
				tpl.Time().Format("Jan 02, 2006"), form.Total, form.Provider),
			Action: func() tea.Cmd {
				return tea.Sequence(
					func() tea.Msg { return router.PopToRootMsg{} },
					func() tea.Msg { return TemplateSelectedMsg{Template: tpl} },
				)
			},
		})
	}

	selected := s.menu.Selected
	s.menu = components.NewMenu(items)
	s.menu.Select(selected)
}

func (s *FavoritesScreen) deleteSelected() tea.Cmd {
	filtered := s.filtered()
	if s.menu.Selected < 0 || s.menu.Selected >= len(filtered) {
		return nil
	}
	id := filtered[s.menu.Selected].ID
	return func() tea.Msg {
		favs, err := s.lib.DeleteFavorite(context.Background(), id)
		if err != nil {
			s.log.WithError(err).WithField("id", id).Error("delete favorite failed")
			return favoritesLoadedMsg{Err: err}
		}
		return favoritesLoadedMsg{Favorites: favs}
	}
}

func (s *FavoritesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.Card(s.search.View(), cw))
	b.WriteString("\n\n")

	switch {
	case !s.loaded:
		b.WriteString(theme.Hint.Render("Loading favorites..."))
	case len(s.favs) == 0:
		b.WriteString(theme.Hint.Render("No favorites yet. Save a form to reuse it."))
	case len(s.menu.Items) == 0:
		b.WriteString(theme.Hint.Render("No favorites match your search."))
	default:
		b.WriteString(s.menu.View(height - 6))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}
