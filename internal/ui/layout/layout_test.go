package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestTooSmall(t *testing.T) {
	if TooSmall(MinWidth, MinHeight) {
		t.Error("minimum size must fit")
	}
	if !TooSmall(MinWidth-1, MinHeight) || !TooSmall(MinWidth, MinHeight-1) {
		t.Error("below minimum must not fit")
	}
	if msg := TooSmallMessage(40, 10); !strings.Contains(msg, "Terminal too small: 40 x 10") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestHeaderDropsTitleWhenNarrow(t *testing.T) {
	wide := Header("New Quiz", "GROQ", 100)
	if !strings.Contains(wide, "LangCoach") || !strings.Contains(wide, "New Quiz") || !strings.Contains(wide, "GROQ") {
		t.Errorf("wide header incomplete: %q", wide)
	}

	narrow := Header(strings.Repeat("x", 60), "GROQ", MinWidth)
	if strings.Contains(narrow, "xxxx") {
		t.Error("title should be dropped when it cannot fit")
	}
	if !strings.Contains(narrow, "GROQ") {
		t.Error("status must survive")
	}
}

func TestFooterKeepsLeadingHints(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "?", Description: "Hint"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	f := Footer(hints, 30)
	if !strings.Contains(f, "Enter") {
		t.Error("first hint must be shown")
	}
	if strings.Contains(f, "Ctrl+C") {
		t.Error("trailing hints should be dropped when they do not fit")
	}
	if !strings.Contains(Footer(hints, 120), "Ctrl+C") {
		t.Error("all hints fit on a wide terminal")
	}
}

func TestComposeFillsHeight(t *testing.T) {
	var gotW, gotH int
	out := Compose(80, 30, Header("t", "", 80), Footer(nil, 80), func(w, h int) string {
		gotW, gotH = w, h
		return "body"
	})
	if gotW != 80 || gotH != 30-3-3 {
		t.Errorf("body got %dx%d", gotW, gotH)
	}
	if lipgloss.Height(out) != 30 {
		t.Errorf("frame height = %d, want 30", lipgloss.Height(out))
	}
}
