package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/langcoach/internal/exercise"
	"github.com/abhisek/langcoach/internal/ui/components"
	"github.com/abhisek/langcoach/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	q := s.quiz

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Exercise %d of %d", q.Index()+1, q.Len())))
	b.WriteString("\n")
	b.WriteString(components.Steps{Current: q.Index(), Total: q.Len(), Width: cw}.View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Render(s.renderText()))
	b.WriteString("\n\n")

	if s.hintsEnabled() {
		b.WriteString(s.renderHints(cw))
		b.WriteString("\n")
	}

	b.WriteString(components.Button{Label: s.nextLabel(), Focused: s.focus == len(s.slots)-1 || len(s.slots) == 0}.View())

	return components.Frame(b.String(), width, height)
}

// renderText draws the exercise with an input in place of each marker.
func (s *QuizScreen) renderText() string {
	var b strings.Builder
	for _, seg := range exercise.Segments(s.quiz.Current().Text) {
		if !seg.Blank {
			b.WriteString(theme.Body.Render(seg.Text))
			continue
		}
		if seg.Position >= len(s.slots) {
			continue
		}
		slot := s.slots[seg.Position]
		style := theme.Slot
		if seg.Position == s.focus {
			style = theme.SlotFocused
		}
		b.WriteString(style.Render("[") + slot.View() + style.Render("]"))
	}
	return b.String()
}

func (s *QuizScreen) renderHints(cw int) string {
	hints := s.quiz.Hints()

	var b strings.Builder
	for i, h := range hints.Revealed() {
		b.WriteString(lipgloss.NewStyle().Width(cw).Render(
			theme.Selected.Render(fmt.Sprintf("Hint %d:", i+1)) + " " + theme.Body.Render(h.Hint)))
		b.WriteString("\n")
	}
	if !hints.Exhausted() {
		shown := len(hints.Revealed())
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Show Next Hint (%d/%d)  ctrl+t", shown+1, hints.Total())))
		b.WriteString("\n")
	}
	return b.String()
}
