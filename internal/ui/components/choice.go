package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/langcoach/internal/ui/theme"
)

// Choice is a single-line selector cycled with Left/Right.
type Choice struct {
	Options  []string
	Selected int
	Focused  bool
}

// NewChoice creates a Choice with the option equal to current selected.
func NewChoice(options []string, current string) Choice {
	c := Choice{Options: options}
	c.Select(current)
	return c
}

// Select moves the selection to value if it is one of the options.
func (c *Choice) Select(value string) {
	for i, o := range c.Options {
		if o == value {
			c.Selected = i
			return
		}
	}
}

// Value returns the selected option.
func (c Choice) Value() string {
	if len(c.Options) == 0 {
		return ""
	}
	return c.Options[c.Selected]
}

// Update cycles the selection on Left/Right while focused.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !c.Focused || len(c.Options) == 0 {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h":
		c.Selected = (c.Selected - 1 + len(c.Options)) % len(c.Options)
	case "right", "l", "space":
		c.Selected = (c.Selected + 1) % len(c.Options)
	}
	return c, nil
}

// View renders the choice as ‹ value ›.
func (c Choice) View() string {
	style := theme.Unselected
	if c.Focused {
		style = theme.Selected
	}
	arrow := lipgloss.NewStyle().Foreground(theme.TextDim)
	return arrow.Render("‹ ") + style.Render(c.Value()) + arrow.Render(" ›")
}

// Toggle is a yes/no switch flipped with Space, Left or Right.
type Toggle struct {
	On      bool
	Focused bool
}

// Update flips the toggle while focused.
func (t Toggle) Update(msg tea.Msg) (Toggle, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !t.Focused {
		return t, nil
	}
	switch kmsg.String() {
	case "space", "left", "right", "h", "l":
		t.On = !t.On
	}
	return t, nil
}

// View renders [x] or [ ].
func (t Toggle) View() string {
	box := "[ ]"
	if t.On {
		box = "[x]"
	}
	if t.Focused {
		return theme.Selected.Render(box)
	}
	return theme.Unselected.Render(box)
}
