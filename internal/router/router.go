// Package router keeps the stack of screens. The bottom screen is the
// exercise form; everything else (quiz, results, history, favorites) is
// pushed over it and unwound back to it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langcoach/internal/screen"
)

// Navigation messages. Screens return these from commands; the app feeds
// them to Router.Update.
type (
	PushScreenMsg    struct{ Screen screen.Screen }
	ReplaceScreenMsg struct{ Screen screen.Screen }
	PopScreenMsg     struct{}
	PopToRootMsg     struct{}
)

// ResumedMsg tells a screen it is on top again. Closed lists the titles
// of the screens that were removed, topmost first.
type ResumedMsg struct {
	Closed []string
}

// Router is a stack of screens with the active one on top.
type Router struct {
	stack []screen.Screen
}

// New creates a Router whose bottom screen is root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push makes s the active screen.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Replace swaps the active screen for s, e.g. quiz for results.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Pop closes the active screen. The root is never popped.
func (r *Router) Pop() tea.Cmd {
	return r.unwind(len(r.stack) - 1)
}

// PopToRoot closes everything above the root.
func (r *Router) PopToRoot() tea.Cmd {
	return r.unwind(1)
}

// unwind truncates the stack to depth and resumes the new top.
func (r *Router) unwind(depth int) tea.Cmd {
	depth = max(depth, 1)
	if depth >= len(r.stack) {
		return nil
	}
	closed := make([]string, 0, len(r.stack)-depth)
	for i := len(r.stack) - 1; i >= depth; i-- {
		closed = append(closed, r.stack[i].Title())
	}
	r.stack = r.stack[:depth]
	return func() tea.Msg { return ResumedMsg{Closed: closed} }
}

// Active is the screen on top, or nil for an empty router.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	}

	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// View renders the active screen into the given area.
func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}
