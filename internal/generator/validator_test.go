package generator

import (
	"strings"
	"testing"

	"github.com/abhisek/langcoach/internal/exercise"
)

func TestStructuralValidator(t *testing.T) {
	v := &StructuralValidator{}
	req := exercise.DefaultRequest()

	tests := []struct {
		name    string
		draft   Draft
		wantErr bool
	}{
		{"valid", Draft{Text: "Yo ___.", Answers: []DraftAnswer{{Answer: "soy"}}}, false},
		{"empty text", Draft{Text: "  ", Answers: []DraftAnswer{{Answer: "soy"}}}, true},
		{"long text", Draft{Text: strings.Repeat("a", 501), Answers: []DraftAnswer{{Answer: "soy"}}}, true},
		{"no answers", Draft{Text: "Yo ___."}, true},
		{"blank answer", Draft{Text: "Yo ___.", Answers: []DraftAnswer{{Answer: " "}}}, true},
		{"long explanation", Draft{Text: "Yo ___.", Answers: []DraftAnswer{{Answer: "soy", Explanation: strings.Repeat("e", 1001)}}}, true},
		{"empty hint", Draft{Text: "Yo ___.", Answers: []DraftAnswer{{Answer: "soy"}}, Hints: []DraftHint{{Evidence: 1}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.draft, req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err.Validator != "structural" {
				t.Errorf("validator name = %q", err.Validator)
			}
		})
	}
}

func TestBlankValidator(t *testing.T) {
	v := &BlankValidator{}
	req := exercise.DefaultRequest()

	tests := []struct {
		name    string
		draft   Draft
		wantErr bool
	}{
		{"one blank", Draft{Text: "Yo ___.", Answers: []DraftAnswer{{Position: 0, Answer: "soy"}}}, false},
		{"two blanks two answers for first", Draft{Text: "___ y ___", Answers: []DraftAnswer{
			{Position: 0, Answer: "a"}, {Position: 0, Answer: "b"}, {Position: 1, Answer: "c"},
		}}, false},
		{"no blanks", Draft{Text: "Yo soy.", Answers: []DraftAnswer{{Position: 0, Answer: "soy"}}}, true},
		{"position out of range", Draft{Text: "Yo ___.", Answers: []DraftAnswer{{Position: 1, Answer: "soy"}}}, true},
		{"negative position", Draft{Text: "Yo ___.", Answers: []DraftAnswer{{Position: -1, Answer: "soy"}}}, true},
		{"uncovered blank", Draft{Text: "___ y ___", Answers: []DraftAnswer{{Position: 0, Answer: "a"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.draft, req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnswerLeakValidator(t *testing.T) {
	v := &AnswerLeakValidator{}
	req := exercise.DefaultRequest()

	leak := Draft{
		Text:    "Ayer ___ al cine.",
		Answers: []DraftAnswer{{Answer: "fuimos"}},
		Hints:   []DraftHint{{Evidence: 1, Hint: "The answer is Fuimos."}},
	}
	if err := v.Validate(&leak, req); err == nil {
		t.Error("expected leak to be detected")
	}

	short := Draft{
		Text:    "___ casa es grande.",
		Answers: []DraftAnswer{{Answer: "la"}},
		Hints:   []DraftHint{{Evidence: 1, Hint: "Use the feminine article, like in la mesa."}},
	}
	if err := v.Validate(&short, req); err != nil {
		t.Errorf("short answers must not count as leaks: %v", err)
	}

	req.IncludeHints = false
	if err := v.Validate(&leak, req); err != nil {
		t.Errorf("hints are ignored when not requested: %v", err)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "blanks", Message: "blank without an answer"}
	if err.Error() != `validator "blanks": blank without an answer` {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
