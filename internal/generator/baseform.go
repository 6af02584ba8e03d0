package generator

import (
	"strings"

	"github.com/abhisek/langcoach/internal/exercise"
)

// InsertBaseForms rewrites the i-th blank of text to "___ (baseForm)" using
// the base form of the first answer at position i. Blanks without a base
// form are left alone.
func InsertBaseForms(text string, answers []DraftAnswer) string {
	baseForms := make(map[int]string)
	for _, a := range answers {
		if _, seen := baseForms[a.Position]; seen {
			continue
		}
		baseForms[a.Position] = strings.TrimSpace(a.BaseForm)
	}

	parts := strings.Split(text, exercise.Marker)
	var b strings.Builder
	for i, part := range parts {
		b.WriteString(part)
		if i == len(parts)-1 {
			break
		}
		b.WriteString(exercise.Marker)
		if bf := baseForms[i]; bf != "" {
			b.WriteString(" (")
			b.WriteString(bf)
			b.WriteString(")")
		}
	}
	return b.String()
}
