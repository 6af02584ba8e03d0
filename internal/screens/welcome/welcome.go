// Package welcome is the splash shown at startup: the banner, a rotating
// greeting and a tagline whose blank fills itself in.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/langcoach/internal/router"
	"github.com/abhisek/langcoach/internal/screen"
	"github.com/abhisek/langcoach/internal/ui/theme"
)

const (
	frameInterval = 80 * time.Millisecond
	typeDelay     = 8  // frames before the blank starts filling
	holdFrames    = 15 // frames to linger once it is filled
)

const banner = `
 ╦  ╔═╗╔╗╔╔═╗╔═╗╔═╗╔═╗╔═╗╦ ╦
 ║  ╠═╣║║║║ ╦║  ║ ║╠═╣║  ╠═╣
 ╩═╝╩ ╩╝╚╝╚═╝╚═╝╚═╝╩ ╩╚═╝╩ ╩`

const bannerCompact = "L A N G C O A C H"

var greetings = []string{"¡Hola!", "Bonjour !", "Ciao!", "Hallo!", "Olá!", "Hej!"}

// The tagline, with answer typed into its blank.
const (
	taglineBefore = "Practice a language one "
	answer        = "blank"
	taglineAfter  = " at a time"
)

type frameMsg time.Time

// WelcomeScreen plays the splash, then replaces itself with next().
type WelcomeScreen struct {
	next   func() screen.Screen
	frames int
	done   bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// totalFrames is how long the splash runs without input.
func totalFrames() int { return typeDelay + len(answer) + holdFrames }

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if w.done {
		return w, nil
	}
	switch msg.(type) {
	case frameMsg:
		w.frames++
		if w.frames >= totalFrames() {
			return w, w.finish()
		}
		return w, nextFrame()
	case tea.KeyPressMsg:
		return w, w.finish()
	}
	return w, nil
}

func (w *WelcomeScreen) finish() tea.Cmd {
	w.done = true
	next := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// typed is how many letters of answer are showing.
func (w *WelcomeScreen) typed() int {
	return min(max(w.frames-typeDelay, 0), len(answer))
}

func (w *WelcomeScreen) View(width, height int) string {
	art := banner
	if width < 40 {
		art = bannerCompact
	}
	greeting := greetings[(w.frames/4)%len(greetings)]

	n := w.typed()
	slot := answer[:n] + strings.Repeat("_", len(answer)-n)

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art),
		"",
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(greeting),
		"",
		theme.Body.Render(taglineBefore) + theme.SlotFocused.Render(slot) + theme.Body.Render(taglineAfter),
		"",
		theme.Hint.Render("press any key to continue"),
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}
