// Package screen defines what the router stacks: the form, quiz, results,
// history and favorites views.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langcoach/internal/ui/layout"
)

// Screen is one full-window view. The app draws the header and footer;
// View fills the space between them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown centred in the header. Empty hides it.
	Title() string
}

// Screens may also implement any of the following.
type (
	// KeyHintProvider replaces the default footer hints.
	KeyHintProvider interface {
		KeyHints() []layout.KeyHint
	}

	// StatusProvider supplies the right side of the header, e.g. the
	// selected provider or "Generating...".
	StatusProvider interface {
		Status() string
	}

	// EscapeHandler screens receive Esc themselves rather than being
	// popped. The quiz uses this so Esc cannot discard answers.
	EscapeHandler interface {
		HandlesEscape() bool
	}
)
