package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a single-line field: a form value or a quiz blank.
type TextInput struct {
	model  textinput.Model
	digits bool
}

// NewTextInput creates an unfocused input. digits restricts typing to
// 0-9, as for the exercise count. limit caps the length when positive.
func NewTextInput(placeholder string, digits bool, limit int) TextInput {
	m := textinput.New()
	m.Prompt = ""
	m.Placeholder = placeholder
	if limit > 0 {
		m.CharLimit = limit
	}
	return TextInput{model: m, digits: digits}
}

func (t *TextInput) Focus() tea.Cmd { return t.model.Focus() }
func (t *TextInput) Blur()          { t.model.Blur() }
func (t TextInput) Focused() bool   { return t.model.Focused() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && t.digits && k.Text != "" && !allDigits(k.Text) {
		return t, nil
	}
	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string { return t.model.View() }

func (t TextInput) Value() string { return t.model.Value() }

// SetValue replaces the contents. Digit-only inputs drop anything else.
func (t *TextInput) SetValue(v string) {
	if t.digits {
		v = strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, v)
	}
	t.model.SetValue(v)
}

// NumericValue parses the contents as a base-10 integer.
func (t TextInput) NumericValue() (int, error) {
	return strconv.Atoi(t.model.Value())
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
