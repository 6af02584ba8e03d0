package quiz

import (
	"sort"

	"github.com/abhisek/langcoach/internal/exercise"
)

// HintReveal tracks the hints shown for a single exercise. Hints are
// revealed one at a time in ascending evidence order.
type HintReveal struct {
	hints    []exercise.Hint
	revealed map[int]bool
}

// NewHintReveal selects the hints for exerciseID and orders them by
// evidence.
func NewHintReveal(hints []exercise.Hint, exerciseID int) HintReveal {
	var own []exercise.Hint
	for _, h := range hints {
		if h.ExerciseID == exerciseID {
			own = append(own, h)
		}
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].Evidence < own[j].Evidence })
	return HintReveal{hints: own, revealed: make(map[int]bool)}
}

// Total is the number of hints available for the exercise.
func (h HintReveal) Total() int {
	return len(h.hints)
}

// Remaining is the number of hints not yet revealed.
func (h HintReveal) Remaining() int {
	n := 0
	for _, hint := range h.hints {
		if !h.revealed[hint.Evidence] {
			n++
		}
	}
	return n
}

// Exhausted reports whether every hint has been revealed.
func (h HintReveal) Exhausted() bool {
	return h.Remaining() <= 0
}

// RevealNext reveals the lowest-evidence hint not yet shown. It returns
// false without changes when all hints are revealed.
func (h *HintReveal) RevealNext() (exercise.Hint, bool) {
	for _, hint := range h.hints {
		if !h.revealed[hint.Evidence] {
			h.revealed[hint.Evidence] = true
			return hint, true
		}
	}
	return exercise.Hint{}, false
}

// Revealed returns the shown hints in evidence order.
func (h HintReveal) Revealed() []exercise.Hint {
	var out []exercise.Hint
	for _, hint := range h.hints {
		if h.revealed[hint.Evidence] {
			out = append(out, hint)
		}
	}
	return out
}
