package generator

import "time"

// Config controls the behavior of the Service.
type Config struct {
	// Validators is the ordered list of validators run on every generated
	// exercise. They execute in order; the first failure drops the exercise.
	Validators []Validator `koanf:"-"`

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int `koanf:"max_tokens"`

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64 `koanf:"temperature"`

	// TopP is the nucleus sampling cutoff.
	TopP float64 `koanf:"top_p"`

	// MaxAttempts bounds how often a response with no usable exercise is
	// regenerated.
	MaxAttempts int `koanf:"max_attempts"`

	// Timeout bounds one Generate call, including regeneration. Zero means
	// no limit beyond the caller's context.
	Timeout time.Duration `koanf:"timeout"`
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&BlankValidator{},
			&AnswerLeakValidator{},
		},
		MaxTokens:   8192,
		Temperature: 1,
		TopP:        0.95,
		MaxAttempts: 2,
		Timeout:     90 * time.Second,
	}
}
