// Package layout draws the chrome around every screen: a header with the
// app name, screen title and status, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/langcoach/internal/ui/theme"
)

// The form is the widest screen: a label column plus a choice control.
const (
	MinWidth  = 64
	MinHeight = 20
)

const appName = "LangCoach"

// KeyHint is one footer entry, e.g. {"Tab", "Next field"}.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
}

// TooSmall reports whether the terminal cannot fit the form.
func TooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// TooSmallMessage asks the user to resize.
func TooSmallMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small: %d x %d\nResize to at least %d x %d", width, height, MinWidth, MinHeight))
}

// bar is the bordered strip used for header and footer.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// Header centres title between the app name and status. The title is
// dropped before the status when space runs out.
func Header(title, status string, width int) string {
	inner := max(width-4, 0)
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" " + appName)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	free := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if lipgloss.Width(mid)+2 > free {
		mid = ""
	}
	lgap := max((inner-lipgloss.Width(mid))/2-lipgloss.Width(left), 1)
	rgap := max(inner-lipgloss.Width(left)-lgap-lipgloss.Width(mid)-lipgloss.Width(right), 1)

	return bar(width).Render(left + strings.Repeat(" ", lgap) + mid + strings.Repeat(" ", rgap) + right)
}

// Footer lists hints in order, leaving off trailing ones that would wrap.
func Footer(hints []KeyHint, width int) string {
	const sep = "   "
	room := max(width-6, 0)

	var line string
	for _, h := range hints {
		part := h.render()
		next := part
		if line != "" {
			next = line + sep + part
		}
		if lipgloss.Width(next) > room {
			break
		}
		line = next
	}
	return bar(width).Render("  " + line)
}

// Compose stacks header, body and footer into a full window. body is
// called with the space left between the two bars.
func Compose(width, height int, header, footer string, body func(width, height int) string) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().Width(width).Height(h).Render(body(width, h))
	return header + "\n" + content + "\n" + footer
}
