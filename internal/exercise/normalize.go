package exercise

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// legacyResponse is the older object-shaped response. Top-level answers and
// hints point at exercises by their wire exerciseId, which need not be the
// exercise's position.
type legacyResponse struct {
	Exercises []legacyExercise `json:"exercises"`
	Answers   []Answer         `json:"answers"`
	Hints     []Hint           `json:"hints"`
}

type legacyExercise struct {
	// ID defaults to the exercise's position when absent.
	ID *int `json:"exerciseId"`
	Item
}

// Normalize flattens a generation response into a Set. It accepts either a
// JSON array of items or the legacy {exercises, answers, hints} object. Each
// exercise's ID is its index in the response array.
func Normalize(raw []byte) (Set, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Set{}, errors.New("empty response")
	}

	switch trimmed[0] {
	case '[':
		var items []Item
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Set{}, fmt.Errorf("decode exercises: %w", err)
		}
		return FromItems(items), nil

	case '{':
		var legacy legacyResponse
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return Set{}, fmt.Errorf("decode exercises: %w", err)
		}
		return legacy.set(), nil

	case 'n':
		// A JSON null body carries no exercises.
		if string(trimmed) == "null" {
			return Set{Exercises: []Exercise{}, Answers: []Answer{}, Hints: []Hint{}}, nil
		}
	}

	return Set{}, fmt.Errorf("unexpected response shape starting with %q", trimmed[0])
}

// FromItems assigns each item its array index as exercise ID and flattens
// nested answers and hints.
func FromItems(items []Item) Set {
	set := Set{
		Exercises: make([]Exercise, 0, len(items)),
		Answers:   []Answer{},
		Hints:     []Hint{},
	}
	for i, it := range items {
		set.Exercises = append(set.Exercises, Exercise{ID: i, Text: it.Text})
		for _, a := range it.Answers {
			set.Answers = append(set.Answers, Answer{
				ExerciseID:  i,
				Position:    a.Position,
				Answer:      a.Answer,
				Explanation: a.Explanation,
			})
		}
		for _, h := range it.Hints {
			set.Hints = append(set.Hints, Hint{ExerciseID: i, Evidence: h.Evidence, Hint: h.Hint})
		}
	}
	return set
}

// ToItems is the inverse of FromItems for sets whose exercise IDs are their
// indexes. Answers and hints for unknown exercise IDs are dropped.
func ToItems(set Set) []Item {
	items := make([]Item, len(set.Exercises))
	index := make(map[int]int, len(set.Exercises))
	for i, ex := range set.Exercises {
		items[i] = Item{Text: ex.Text, Answers: []ItemAnswer{}, Hints: []ItemHint{}}
		index[ex.ID] = i
	}
	for _, a := range set.Answers {
		if i, ok := index[a.ExerciseID]; ok {
			items[i].Answers = append(items[i].Answers, ItemAnswer{
				Position:    a.Position,
				Answer:      a.Answer,
				Explanation: a.Explanation,
			})
		}
	}
	for _, h := range set.Hints {
		if i, ok := index[h.ExerciseID]; ok {
			items[i].Hints = append(items[i].Hints, ItemHint{Evidence: h.Evidence, Hint: h.Hint})
		}
	}
	return items
}

// set renumbers the exercises by position and moves the top-level answers
// and hints onto the new IDs. References to unknown exercises are dropped;
// they could otherwise land on whichever exercise has that position.
func (r legacyResponse) set() Set {
	items := make([]Item, len(r.Exercises))
	index := make(map[int]int, len(r.Exercises))
	for i, ex := range r.Exercises {
		items[i] = ex.Item
		wire := i
		if ex.ID != nil {
			wire = *ex.ID
		}
		if _, dup := index[wire]; !dup {
			index[wire] = i
		}
	}

	set := FromItems(items)
	for _, a := range r.Answers {
		if i, ok := index[a.ExerciseID]; ok {
			a.ExerciseID = i
			set.Answers = append(set.Answers, a)
		}
	}
	for _, h := range r.Hints {
		if i, ok := index[h.ExerciseID]; ok {
			h.ExerciseID = i
			set.Hints = append(set.Hints, h)
		}
	}
	return set
}
