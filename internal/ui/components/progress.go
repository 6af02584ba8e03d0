package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/langcoach/internal/ui/theme"
)

// Steps is a segmented track with one cell per exercise: finished cells
// in teal, the current one in indigo, the rest dim. It falls back to a
// proportional bar when there are more exercises than columns.
type Steps struct {
	Current int
	Total   int
	Width   int
}

func (s Steps) View() string {
	if s.Total <= 0 {
		return ""
	}
	count := fmt.Sprintf(" %d/%d", s.Current+1, s.Total)
	track := max(s.Width-lipgloss.Width(count), s.Total)

	done := lipgloss.NewStyle().Foreground(theme.Secondary)
	now := lipgloss.NewStyle().Foreground(theme.Primary)
	todo := lipgloss.NewStyle().Foreground(theme.Border)

	var b strings.Builder
	cell := track / s.Total
	if cell >= 2 {
		seg := strings.Repeat("━", cell-1) + " "
		for i := 0; i < s.Total; i++ {
			switch {
			case i < s.Current:
				b.WriteString(done.Render(seg))
			case i == s.Current:
				b.WriteString(now.Render(seg))
			default:
				b.WriteString(todo.Render(seg))
			}
		}
	} else {
		filled := track * s.Current / s.Total
		b.WriteString(done.Render(strings.Repeat("━", filled)))
		b.WriteString(todo.Render(strings.Repeat("━", track-filled)))
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(count))
	return b.String()
}

// ScoreMeter shows correct blanks out of the total, coloured by how well
// the player did.
type ScoreMeter struct {
	Score int
	Total int
	Width int
}

// Ratio is Score/Total, or 0 for an empty quiz.
func (m ScoreMeter) Ratio() float64 {
	if m.Total <= 0 {
		return 0
	}
	return float64(m.Score) / float64(m.Total)
}

func (m ScoreMeter) View() string {
	label := fmt.Sprintf("Score: %d/%d", m.Score, m.Total)
	pct := fmt.Sprintf(" %3.0f%%", m.Ratio()*100)
	width := max(m.Width-lipgloss.Width(label)-lipgloss.Width(pct)-2, 4)
	filled := min(int(float64(width)*m.Ratio()+0.5), width)

	color := theme.Error
	switch r := m.Ratio(); {
	case r >= 0.8:
		color = theme.Success
	case r >= 0.5:
		color = theme.Accent
	}

	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(label) + "  " +
		lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", width-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(pct)
}
