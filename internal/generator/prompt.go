package generator

import (
	"fmt"
	"strings"

	"github.com/abhisek/langcoach/internal/exercise"
)

const systemPrompt = `You are a language teacher writing fill-in-the-blank exercises.

Rules:
- Write every exercise in the target language. Write explanations and hints in the learner's language.
- Mark each blank with exactly three underscores: ___. Never use underscores for anything else.
- Each exercise has between one and three blanks and reads naturally as one or two sentences.
- For every blank, give at least one answer with its zero-based position among the ___ markers. If several answers are correct, repeat the position once per answer.
- Answers are the exact words that fill the blank, without surrounding punctuation.
- Give the dictionary form (for verbs, the infinitive) of every answer as baseForm.
- Match vocabulary and grammar to the requested CEFR level.
- Stay on the requested topic. Vary sentence structure and vocabulary across exercises.
- When hints are requested, give two or three hints per exercise with evidence 1, 2, 3, from vaguest to most revealing. Hints never state the answer. Otherwise return an empty hints list.
- Return exactly the requested number of exercises.`

// buildUserMessage constructs the user message from a generation request.
func buildUserMessage(req exercise.Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Target language: %s\n", req.ExerciseLanguage)
	fmt.Fprintf(&b, "Learner's language: %s\n", req.UserLanguage)
	fmt.Fprintf(&b, "Topic: %s\n", req.TopicOrDefault())
	fmt.Fprintf(&b, "Level: %s (%s)\n", req.Difficulty, req.Difficulty.Label())
	fmt.Fprintf(&b, "Number of exercises: %d\n", req.Total)
	fmt.Fprintf(&b, "Hints requested: %t\n", req.IncludeHints)

	if req.IncludeBaseForm {
		b.WriteString("\nThe learner sees each answer's baseForm next to its blank, so blanks should test inflection (conjugation, agreement, case) of that base form.")
	}

	return b.String()
}
