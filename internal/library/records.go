package library

import (
	"time"

	"github.com/abhisek/langcoach/internal/exercise"
)

// GameRecord is a frozen snapshot of one completed quiz.
type GameRecord struct {
	ID          string              `json:"id"`
	Timestamp   int64               `json:"timestamp"` // Unix milliseconds
	FormData    exercise.Request    `json:"formData"`
	Exercises   []exercise.Exercise `json:"exercises"`
	Answers     []exercise.Answer   `json:"answers"`
	Hints       []exercise.Hint     `json:"hints"`
	UserAnswers [][]string          `json:"userAnswers"`
	Timings     []float64           `json:"timings"` // seconds per exercise
	Score       int                 `json:"score"`
	TotalTime   float64             `json:"totalTime"`
	AvgTime     float64             `json:"avgTime"`
	TotalBlanks int                 `json:"totalBlanks,omitempty"`
}

// Time returns the record's creation time.
func (g GameRecord) Time() time.Time {
	return time.UnixMilli(g.Timestamp)
}

// Blanks returns TotalBlanks, or the marker count across the exercises for
// records saved without it.
func (g GameRecord) Blanks() int {
	if g.TotalBlanks > 0 {
		return g.TotalBlanks
	}
	return exercise.TotalBlanks(g.Exercises)
}

// Set returns the record's exercises, answers and hints.
func (g GameRecord) Set() exercise.Set {
	return exercise.Set{Exercises: g.Exercises, Answers: g.Answers, Hints: g.Hints}
}

// TemplateRecord is a saved generation request.
type TemplateRecord struct {
	ID        string           `json:"id"`
	Timestamp int64            `json:"timestamp"`
	FormData  exercise.Request `json:"formData"`
}

// Time returns the record's creation time.
func (t TemplateRecord) Time() time.Time {
	return time.UnixMilli(t.Timestamp)
}
