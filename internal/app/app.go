// Package app hosts the root Bubble Tea model: the screen router inside a
// header and footer frame.
package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/langcoach/internal/library"
	"github.com/abhisek/langcoach/internal/router"
	"github.com/abhisek/langcoach/internal/screen"
	"github.com/abhisek/langcoach/internal/screens/form"
	"github.com/abhisek/langcoach/internal/screens/welcome"
	"github.com/abhisek/langcoach/internal/ui/layout"
)

// Options configures the application.
type Options struct {
	Generator form.Generator
	Library   *library.Library
	Log       logrus.FieldLogger

	// Now is the quiz clock. Nil means time.Now.
	Now func() time.Time

	// SkipWelcome starts directly on the form.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the welcome splash, which
// hands over to the form.
func newAppModel(opts Options) AppModel {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	newForm := func() screen.Screen {
		return form.New(form.Deps{
			Generator: opts.Generator,
			Library:   opts.Library,
			Log:       opts.Log,
			Now:       opts.Now,
		})
	}

	var initial screen.Screen
	if opts.SkipWelcome {
		initial = newForm()
	} else {
		initial = welcome.New(newForm)
	}
	return AppModel{
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws the frame for the current window size.
func (m AppModel) render() string {
	if layout.TooSmall(m.width, m.height) {
		return layout.TooSmallMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	return layout.Compose(m.width, m.height,
		layout.Header(title, status, m.width),
		layout.Footer(m.footerHints(active), m.width),
		m.router.View)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Generator == nil {
		return fmt.Errorf("app: generator is required")
	}
	if opts.Library == nil {
		return fmt.Errorf("app: library is required")
	}

	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
