package exercise

import "strings"

// Marker denotes a fill-in slot in exercise text.
const Marker = "___"

// Segment is a piece of exercise text: either literal text or a blank.
type Segment struct {
	Text     string
	Blank    bool
	Position int // ordinal among blanks; -1 for text segments
}

// Segments splits text on Marker. Each marker becomes a blank segment whose
// Position is its ordinal among the markers, left to right. Empty text
// segments are omitted.
func Segments(text string) []Segment {
	parts := strings.Split(text, Marker)
	segs := make([]Segment, 0, 2*len(parts))
	for i, p := range parts {
		if p != "" {
			segs = append(segs, Segment{Text: p, Position: -1})
		}
		if i < len(parts)-1 {
			segs = append(segs, Segment{Blank: true, Position: i})
		}
	}
	return segs
}

// BlankCount returns the number of markers in text.
func BlankCount(text string) int {
	return strings.Count(text, Marker)
}

// TotalBlanks sums BlankCount over every exercise.
func TotalBlanks(exercises []Exercise) int {
	n := 0
	for _, ex := range exercises {
		n += BlankCount(ex.Text)
	}
	return n
}
