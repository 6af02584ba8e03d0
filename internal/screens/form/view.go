package form

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/langcoach/internal/ui/components"
	"github.com/abhisek/langcoach/internal/ui/theme"
)

const labelWidth = 22

func (s *FormScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	rows := []struct {
		field int
		label string
		value string
	}{
		{fieldProvider, "AI Provider", s.provider.View()},
		{fieldExerciseLanguage, "Exercise Language", s.exerciseLanguage.View()},
		{fieldUserLanguage, "Explanation Language", s.userLanguage.View()},
		{fieldTopic, "Topic", s.topic.View()},
		{fieldTotal, "Number of Exercises", s.total.View()},
		{fieldDifficulty, "Difficulty", s.difficulty.View()},
		{fieldBaseForm, "Include Base Form", s.baseForm.View()},
		{fieldHints, "Include Hints", s.hints.View()},
	}

	var fields strings.Builder
	for i, r := range rows {
		if i > 0 {
			fields.WriteString("\n")
		}
		label := theme.Label
		if s.focus == r.field {
			label = theme.Selected
		}
		fields.WriteString(label.Width(labelWidth).Render(r.label))
		fields.WriteString(r.value)
	}

	status := s.SaveStatus()
	buttons := []components.Button{
		{Label: "Generate Exercises", Focused: s.focus == buttonGenerate, Disabled: s.loading},
		{Label: status.Label(), Focused: s.focus == buttonSave, Disabled: !status.Enabled()},
		{Label: "History", Focused: s.focus == buttonHistory},
		{Label: "Favorites", Focused: s.focus == buttonFavorites},
	}
	views := make([]string, len(buttons))
	for i, b := range buttons {
		views[i] = b.View()
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Language Exercise Generator"))
	b.WriteString("\n\n")
	b.WriteString(components.Card(fields.String(), cw))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, views[0], " ", views[1]))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, views[2], " ", views[3]))

	switch {
	case s.loading:
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(spinnerFrames[s.frame] + " Generating exercises..."))
	case s.errMsg != "":
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	return components.Frame(b.String(), width, height)
}
