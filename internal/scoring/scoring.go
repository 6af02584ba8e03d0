// Package scoring checks quiz answers against the accepted answers for each
// blank.
package scoring

import (
	"sort"
	"strings"

	"github.com/abhisek/langcoach/internal/exercise"
)

// Normalize prepares an answer for comparison: whitespace is trimmed and
// the result is lowercased.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type blankKey struct {
	exerciseID int
	position   int
}

// Key maps each (exercise, position) to its set of normalized accepted
// answers.
type Key struct {
	accepted map[blankKey]map[string]bool
}

// NewKey builds a Key from answer records.
func NewKey(answers []exercise.Answer) Key {
	k := Key{accepted: make(map[blankKey]map[string]bool)}
	for _, a := range answers {
		bk := blankKey{a.ExerciseID, a.Position}
		if k.accepted[bk] == nil {
			k.accepted[bk] = make(map[string]bool)
		}
		k.accepted[bk][Normalize(a.Answer)] = true
	}
	return k
}

// Accepts reports whether value is an accepted answer for the blank.
// An empty answer is never accepted.
func (k Key) Accepts(exerciseID, position int, value string) bool {
	v := Normalize(value)
	if v == "" {
		return false
	}
	return k.accepted[blankKey{exerciseID, position}][v]
}

// Score counts correct blanks. userAnswers is indexed by the exercise's
// position in exercises, then by blank position; missing entries count as
// empty.
func Score(exercises []exercise.Exercise, answers []exercise.Answer, userAnswers [][]string) int {
	key := NewKey(answers)
	score := 0
	for i, ex := range exercises {
		var given []string
		if i < len(userAnswers) {
			given = userAnswers[i]
		}
		for pos, v := range given {
			if key.Accepts(ex.ID, pos, v) {
				score++
			}
		}
	}
	return score
}

// BlankReview is the verdict for one blank of a completed exercise.
type BlankReview struct {
	Position    int
	UserAnswer  string
	Accepted    []string // distinct accepted answers in input order
	Correct     bool
	Explanation string // first non-empty explanation, if any
}

// Review grades one exercise blank by blank. Only positions that have
// accepted answers are reviewed, in ascending order.
func Review(ex exercise.Exercise, answers []exercise.Answer, given []string) []BlankReview {
	byPos := make(map[int][]exercise.Answer)
	for _, a := range answers {
		if a.ExerciseID == ex.ID {
			byPos[a.Position] = append(byPos[a.Position], a)
		}
	}

	positions := make([]int, 0, len(byPos))
	for p := range byPos {
		positions = append(positions, p)
	}
	sort.Ints(positions)

	key := NewKey(answers)
	out := make([]BlankReview, 0, len(positions))
	for _, p := range positions {
		r := BlankReview{Position: p}
		if p >= 0 && p < len(given) {
			r.UserAnswer = given[p]
		}
		r.Correct = key.Accepts(ex.ID, p, r.UserAnswer)

		seen := make(map[string]bool)
		for _, a := range byPos[p] {
			if !seen[a.Answer] {
				seen[a.Answer] = true
				r.Accepted = append(r.Accepted, a.Answer)
			}
			if r.Explanation == "" && a.Explanation != "" {
				r.Explanation = a.Explanation
			}
		}
		out = append(out, r)
	}
	return out
}

// Verdict renders the review line suffix shown next to a user's answer.
func (r BlankReview) Verdict() string {
	joined := strings.Join(r.Accepted, " / ")
	switch {
	case r.Correct && len(r.Accepted) > 1:
		return "Correct (all valid: " + joined + ")"
	case r.Correct:
		return "Correct"
	default:
		return "Correct: " + joined
	}
}
