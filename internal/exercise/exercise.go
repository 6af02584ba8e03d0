// Package exercise defines the fill-in-the-blank exercise model, the
// generation request, and the normalization of generation responses.
package exercise

// Exercise is one fill-in-the-blank sentence. ID is the exercise's index in
// the generation response; answers and hints refer to it by that index.
type Exercise struct {
	ID   int    `json:"exerciseId"`
	Text string `json:"text"`
}

// Answer is one accepted answer for a blank. Several answers may share the
// same ExerciseID and Position.
type Answer struct {
	ExerciseID  int    `json:"exerciseId"`
	Position    int    `json:"position"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// Hint is a clue for an exercise. Evidence orders the reveal sequence and
// identifies the hint within its exercise.
type Hint struct {
	ExerciseID int    `json:"exerciseId"`
	Evidence   int    `json:"evidence"`
	Hint       string `json:"hint"`
}

// Set is a generated quiz flattened into three lists.
type Set struct {
	Exercises []Exercise `json:"exercises"`
	Answers   []Answer   `json:"answers"`
	Hints     []Hint     `json:"hints"`
}

// AnswersFor returns the answers belonging to exerciseID in input order.
func (s Set) AnswersFor(exerciseID int) []Answer {
	var out []Answer
	for _, a := range s.Answers {
		if a.ExerciseID == exerciseID {
			out = append(out, a)
		}
	}
	return out
}

// HintsFor returns the hints belonging to exerciseID in input order.
func (s Set) HintsFor(exerciseID int) []Hint {
	var out []Hint
	for _, h := range s.Hints {
		if h.ExerciseID == exerciseID {
			out = append(out, h)
		}
	}
	return out
}

// Item is the wire shape of one generated exercise.
type Item struct {
	Text    string       `json:"text"`
	Answers []ItemAnswer `json:"answers"`
	Hints   []ItemHint   `json:"hints"`
}

// ItemAnswer is an answer nested inside an Item.
type ItemAnswer struct {
	Position    int    `json:"position"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// ItemHint is a hint nested inside an Item.
type ItemHint struct {
	Evidence int    `json:"evidence"`
	Hint     string `json:"hint"`
}
