package exercise

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Provider selects the LLM backend that generates exercises.
type Provider string

const (
	ProviderGroq      Provider = "GROQ"
	ProviderOpenAI    Provider = "OPENAI"
	ProviderAnthropic Provider = "ANTHROPIC"
	ProviderGemini    Provider = "GEMINI"
)

// Providers lists every provider in display order.
var Providers = []Provider{ProviderGroq, ProviderOpenAI, ProviderAnthropic, ProviderGemini}

// ParseProvider matches s case-insensitively against the known providers.
func ParseProvider(s string) (Provider, error) {
	for _, p := range Providers {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("Unknown provider: %s", s)
}

func (p *Provider) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*p = ""
		return nil
	}
	parsed, err := ParseProvider(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Difficulty is a CEFR level.
type Difficulty string

const (
	A1 Difficulty = "A1"
	A2 Difficulty = "A2"
	B1 Difficulty = "B1"
	B2 Difficulty = "B2"
	C1 Difficulty = "C1"
	C2 Difficulty = "C2"
)

// Difficulties lists every level from easiest to hardest.
var Difficulties = []Difficulty{A1, A2, B1, B2, C1, C2}

var difficultyLabels = map[Difficulty]string{
	A1: "Beginner",
	A2: "Elementary",
	B1: "Intermediate",
	B2: "Upper Intermediate",
	C1: "Advanced",
	C2: "Proficiency",
}

// Label returns the human-readable CEFR name, e.g. "Elementary" for A2.
func (d Difficulty) Label() string {
	return difficultyLabels[d]
}

// ParseDifficulty matches s case-insensitively against the CEFR levels.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("Invalid difficulty level: %s", s)
}

func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = ""
		return nil
	}
	parsed, err := ParseDifficulty(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

const (
	MinTotal = 1
	MaxTotal = 50
)

// Request holds the parameters of one generation request.
type Request struct {
	Provider         Provider   `json:"provider" validate:"required,oneof=GROQ OPENAI ANTHROPIC GEMINI"`
	ExerciseLanguage string     `json:"exerciseLanguage" validate:"required"`
	UserLanguage     string     `json:"userLanguage" validate:"required"`
	Topic            string     `json:"topic"`
	Total            int        `json:"total" validate:"min=1,max=50"`
	Difficulty       Difficulty `json:"difficulty" validate:"required,oneof=A1 A2 B1 B2 C1 C2"`
	IncludeBaseForm  bool       `json:"includeBaseForm"`
	IncludeHints     bool       `json:"includeHints"`
}

// DefaultRequest returns the form's initial values.
func DefaultRequest() Request {
	return Request{
		Provider:         ProviderGroq,
		ExerciseLanguage: "Spanish",
		UserLanguage:     "English",
		Topic:            "Past and Future Tenses",
		Total:            10,
		Difficulty:       A2,
		IncludeBaseForm:  true,
		IncludeHints:     true,
	}
}

// TopicOrDefault returns the topic, or "General" when it is blank.
func (r Request) TopicOrDefault() string {
	if strings.TrimSpace(r.Topic) == "" {
		return "General"
	}
	return r.Topic
}
