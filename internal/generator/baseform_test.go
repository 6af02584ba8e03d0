package generator

import "testing"

func TestInsertBaseForms(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		answers []DraftAnswer
		want    string
	}{
		{
			name:    "single blank",
			text:    "Ayer yo ___ al cine.",
			answers: []DraftAnswer{{Position: 0, BaseForm: "ir"}},
			want:    "Ayer yo ___ (ir) al cine.",
		},
		{
			name: "first answer per position wins",
			text: "Ella ___ feliz y ___ cansada.",
			answers: []DraftAnswer{
				{Position: 1, BaseForm: "estar"},
				{Position: 0, BaseForm: "ser"},
				{Position: 0, BaseForm: "estar"},
			},
			want: "Ella ___ (ser) feliz y ___ (estar) cansada.",
		},
		{
			name:    "missing base form",
			text:    "___ y ___",
			answers: []DraftAnswer{{Position: 1, BaseForm: "comer"}, {Position: 0, BaseForm: " "}},
			want:    "___ y ___ (comer)",
		},
		{
			name:    "no blanks",
			text:    "Nada que hacer.",
			answers: []DraftAnswer{{Position: 0, BaseForm: "hacer"}},
			want:    "Nada que hacer.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InsertBaseForms(tt.text, tt.answers); got != tt.want {
				t.Errorf("InsertBaseForms() = %q, want %q", got, tt.want)
			}
		})
	}
}
