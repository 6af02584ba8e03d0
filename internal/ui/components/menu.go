package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langcoach/internal/ui/theme"
)

// MenuItem is one saved entry in a list screen.
type MenuItem struct {
	Label  string
	Detail string // optional dim second line
	Action func() tea.Cmd
}

// Menu is a scrolling pick list. It only reacts to navigation keys and
// Enter so it can sit under a search box that takes the printable keys.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Select moves the cursor to i, clamped to the list. Rebuilding a list
// after a delete calls this so the cursor lands on a neighbour.
func (m *Menu) Select(i int) {
	m.Selected = max(0, min(i, len(m.Items)-1))
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up":
		m.Select(m.Selected - 1)
	case "down":
		m.Select(m.Selected + 1)
	case "home":
		m.Select(0)
	case "end":
		m.Select(len(m.Items) - 1)
	case "enter":
		if act := m.Items[m.Selected].Action; act != nil {
			return m, act()
		}
	}
	return m, nil
}

// View renders the rows that fit in height (0 means all), scrolled so the
// cursor stays on screen.
func (m Menu) View(height int) string {
	rowsPer := 1
	for _, item := range m.Items {
		if item.Detail != "" {
			rowsPer = 2
			break
		}
	}

	first, last := 0, len(m.Items)
	if height > 0 {
		visible := max(1, height/rowsPer)
		first = max(0, m.Selected-visible+1)
		last = min(last, first+visible)
	}

	var b strings.Builder
	for i := first; i < last; i++ {
		item := m.Items[i]
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		} else {
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		b.WriteByte('\n')
		if item.Detail != "" {
			b.WriteString(theme.Hint.Render("      "+item.Detail) + "\n")
		}
	}
	return b.String()
}
