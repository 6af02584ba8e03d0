package generator

import (
	"strings"

	"github.com/abhisek/langcoach/internal/exercise"
)

const (
	maxTextLen        = 500
	maxExplanationLen = 1000
	maxHintLen        = 300
)

// StructuralValidator checks that required fields are present and within
// length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(d *Draft, _ exercise.Request) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	if strings.TrimSpace(d.Text) == "" {
		return fail("exercise text is empty")
	}
	if len(d.Text) > maxTextLen {
		return fail("exercise text exceeds 500 characters")
	}
	if len(d.Answers) == 0 {
		return fail("exercise has no answers")
	}
	for _, a := range d.Answers {
		if strings.TrimSpace(a.Answer) == "" {
			return fail("answer is empty")
		}
		if len(a.Explanation) > maxExplanationLen {
			return fail("explanation exceeds 1000 characters")
		}
	}
	for _, h := range d.Hints {
		if strings.TrimSpace(h.Hint) == "" {
			return fail("hint is empty")
		}
		if len(h.Hint) > maxHintLen {
			return fail("hint exceeds 300 characters")
		}
	}
	return nil
}

// BlankValidator checks that answers line up with the blank markers: every
// position refers to an existing blank and every blank has an answer.
type BlankValidator struct{}

func (v *BlankValidator) Name() string { return "blanks" }

func (v *BlankValidator) Validate(d *Draft, _ exercise.Request) *ValidationError {
	n := exercise.BlankCount(d.Text)
	if n == 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "exercise has no ___ blanks",
			Retryable: true,
		}
	}

	covered := make([]bool, n)
	for _, a := range d.Answers {
		if a.Position < 0 || a.Position >= n {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "answer position out of range",
				Retryable: true,
			}
		}
		covered[a.Position] = true
	}
	for _, ok := range covered {
		if !ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "blank without an answer",
				Retryable: true,
			}
		}
	}
	return nil
}

// AnswerLeakValidator rejects exercises whose hints spell out an answer.
type AnswerLeakValidator struct{}

func (v *AnswerLeakValidator) Name() string { return "answer-leak" }

func (v *AnswerLeakValidator) Validate(d *Draft, req exercise.Request) *ValidationError {
	if !req.IncludeHints {
		return nil
	}
	for _, h := range d.Hints {
		hint := strings.ToLower(h.Hint)
		for _, a := range d.Answers {
			answer := strings.ToLower(strings.TrimSpace(a.Answer))
			// Very short answers (articles, pronouns) appear in ordinary
			// prose, so only longer ones count as a leak.
			if len([]rune(answer)) >= 4 && containsWord(hint, answer) {
				return &ValidationError{
					Validator: v.Name(),
					Message:   "hint reveals the answer",
					Retryable: true,
				}
			}
		}
	}
	return nil
}

// containsWord reports whether word occurs in s delimited by non-letters.
func containsWord(s, word string) bool {
	for _, f := range strings.FieldsFunc(s, isWordBreak) {
		if f == word {
			return true
		}
	}
	// Multi-word answers are matched as a substring.
	return strings.ContainsRune(word, ' ') && strings.Contains(s, word)
}

func isWordBreak(r rune) bool {
	return r == ' ' || r == ',' || r == '.' || r == ';' || r == ':' ||
		r == '!' || r == '?' || r == '"' || r == '\'' || r == '(' || r == ')' ||
		r == '«' || r == '»' || r == '¿' || r == '¡' || r == '\n' || r == '\t'
}
