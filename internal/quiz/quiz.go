// Package quiz runs a generated exercise set as a forward-only sequence:
// one exercise at a time, timed, with progressive hints.
package quiz

import (
	"errors"
	"time"

	"github.com/abhisek/langcoach/internal/exercise"
	"github.com/abhisek/langcoach/internal/library"
	"github.com/abhisek/langcoach/internal/scoring"
)

// ErrNoExercises is returned when a quiz is started from an empty set.
var ErrNoExercises = errors.New("no exercises to play")

// Quiz is the navigation state machine. It starts at index 0 and only moves
// forward; advancing past the last exercise finishes it.
type Quiz struct {
	set  exercise.Set
	form exercise.Request
	now  func() time.Time

	index     int
	enteredAt time.Time
	answers   [][]string
	timings   []float64
	hints     HintReveal

	finished bool
	record   library.GameRecord
}

// New starts a quiz at index 0. now is the clock used for timings; nil
// means time.Now.
func New(set exercise.Set, form exercise.Request, now func() time.Time) (*Quiz, error) {
	if len(set.Exercises) == 0 {
		return nil, ErrNoExercises
	}
	if now == nil {
		now = time.Now
	}

	answers := make([][]string, len(set.Exercises))
	for i, ex := range set.Exercises {
		answers[i] = make([]string, exercise.BlankCount(ex.Text))
	}

	q := &Quiz{
		set:       set,
		form:      form,
		now:       now,
		answers:   answers,
		timings:   make([]float64, 0, len(set.Exercises)),
		enteredAt: now(),
	}
	q.hints = NewHintReveal(set.Hints, set.Exercises[0].ID)
	return q, nil
}

// Index is the zero-based position of the active exercise.
func (q *Quiz) Index() int { return q.index }

// Len is the number of exercises.
func (q *Quiz) Len() int { return len(q.set.Exercises) }

// IsLast reports whether the active exercise is the final one.
func (q *Quiz) IsLast() bool { return q.index == len(q.set.Exercises)-1 }

// Finished reports whether the quiz has been finalized.
func (q *Quiz) Finished() bool { return q.finished }

// Form returns the request the exercises were generated from.
func (q *Quiz) Form() exercise.Request { return q.form }

// Current returns the active exercise.
func (q *Quiz) Current() exercise.Exercise {
	return q.set.Exercises[q.index]
}

// SetAnswer records the user's answer for a blank of the active exercise.
// Out-of-range positions and calls after finishing are ignored.
func (q *Quiz) SetAnswer(position int, value string) {
	if q.finished {
		return
	}
	cur := q.answers[q.index]
	if position < 0 || position >= len(cur) {
		return
	}
	cur[position] = value
}

// Answer returns the user's answer for a blank of the active exercise.
func (q *Quiz) Answer(position int) string {
	cur := q.answers[q.index]
	if position < 0 || position >= len(cur) {
		return ""
	}
	return cur[position]
}

// Hints returns the hint state of the active exercise.
func (q *Quiz) Hints() HintReveal { return q.hints }

// RevealHint reveals the next hint of the active exercise, if any remain.
func (q *Quiz) RevealHint() (exercise.Hint, bool) {
	if q.finished {
		return exercise.Hint{}, false
	}
	return q.hints.RevealNext()
}

// Next records the time spent on the active exercise and clears its hints.
// On the last exercise it finalizes the quiz instead of advancing and
// returns true; the finalized record is available from Record. Calls after
// finishing do nothing and return false.
func (q *Quiz) Next() bool {
	if q.finished {
		return false
	}

	now := q.now()
	q.timings = append(q.timings, now.Sub(q.enteredAt).Seconds())

	if q.IsLast() {
		q.finalize()
		return true
	}

	q.index++
	q.enteredAt = now
	q.hints = NewHintReveal(q.set.Hints, q.set.Exercises[q.index].ID)
	return false
}

// Record returns the finalized game. It is the zero value until Next has
// finished the quiz.
func (q *Quiz) Record() library.GameRecord { return q.record }

func (q *Quiz) finalize() {
	var total float64
	for _, t := range q.timings {
		total += t
	}
	var avg float64
	if len(q.timings) > 0 {
		avg = total / float64(len(q.timings))
	}

	answers := make([][]string, len(q.answers))
	for i, a := range q.answers {
		answers[i] = append([]string(nil), a...)
	}

	q.record = library.GameRecord{
		FormData:    q.form,
		Exercises:   q.set.Exercises,
		Answers:     q.set.Answers,
		Hints:       q.set.Hints,
		UserAnswers: answers,
		Timings:     append([]float64(nil), q.timings...),
		Score:       scoring.Score(q.set.Exercises, q.set.Answers, answers),
		TotalTime:   total,
		AvgTime:     avg,
		TotalBlanks: exercise.TotalBlanks(q.set.Exercises),
	}
	q.finished = true
	q.hints = HintReveal{}
}
