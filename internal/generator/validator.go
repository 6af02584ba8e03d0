package generator

import (
	"fmt"

	"github.com/abhisek/langcoach/internal/exercise"
)

// Validator checks a generated exercise for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error messages
	// and logging), e.g. "structural", "blanks".
	Name() string

	// Validate checks the draft and returns nil if it passes.
	Validate(d *Draft, req exercise.Request) *ValidationError
}

// ValidationError describes why an exercise failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
