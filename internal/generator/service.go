// Package generator turns a generation request into validated
// fill-in-the-blank exercises using an LLM provider.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/langcoach/internal/exercise"
	"github.com/abhisek/langcoach/internal/llm"
)

// Purpose labels generation calls in the LLM event log.
const Purpose = "exercise-gen"

// UnsupportedProviderError is returned when no provider is configured for
// the requested backend.
type UnsupportedProviderError struct {
	Provider exercise.Provider
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("Unsupported AI provider: %s", e.Provider)
}

// ErrNoValidExercises is returned when every generated exercise failed
// validation.
var ErrNoValidExercises = errors.New("no valid exercises generated")

// Service generates exercises with one provider per backend.
type Service struct {
	providers map[string]llm.Provider
	config    Config
	log       logrus.FieldLogger
}

// New creates a Service. providers is keyed by lowercase provider name as
// returned by llm.NewProviders.
func New(providers map[string]llm.Provider, cfg Config, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Service{providers: providers, config: cfg, log: log}
}

// Supports reports whether a provider is configured for p.
func (s *Service) Supports(p exercise.Provider) bool {
	_, ok := s.providers[providerKey(p)]
	return ok
}

// Generate produces up to req.Total validated exercises. Exercises failing
// validation are dropped; when none survive the response is regenerated up
// to Config.MaxAttempts times.
func (s *Service) Generate(ctx context.Context, req exercise.Request) ([]exercise.Item, error) {
	provider, ok := s.providers[providerKey(req.Provider)]
	if !ok {
		return nil, &UnsupportedProviderError{Provider: req.Provider}
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	log := s.log.WithFields(logrus.Fields{
		"provider":   req.Provider,
		"language":   req.ExerciseLanguage,
		"difficulty": req.Difficulty,
		"total":      req.Total,
	})
	log.Info("generating exercises")

	llmReq := llm.Request{
		System:      systemPrompt,
		Prompt:      buildUserMessage(req),
		Schema:      ExercisesSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
		TopP:        s.config.TopP,
	}

	var lastErr error
	for attempt := 1; attempt <= s.config.MaxAttempts; attempt++ {
		resp, err := provider.Generate(ctx, llmReq)
		if err != nil {
			return nil, fmt.Errorf("LLM generation failed: %w", err)
		}

		var raw exercisesOutput
		if err := json.Unmarshal(resp.Content, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse LLM response: %w", err)
		}

		drafts, verr := s.validate(raw.Exercises, req, log)
		if len(drafts) > 0 {
			if len(drafts) > req.Total && req.Total > 0 {
				drafts = drafts[:req.Total]
			}
			log.WithFields(logrus.Fields{
				"model":         resp.Model,
				"exercises":     len(drafts),
				"input_tokens":  resp.Usage.InputTokens,
				"output_tokens": resp.Usage.OutputTokens,
			}).Info("generated exercises")
			return s.assemble(drafts, req), nil
		}

		lastErr = ErrNoValidExercises
		if verr != nil {
			lastErr = fmt.Errorf("%w: %v", ErrNoValidExercises, verr)
			if !verr.Retryable {
				break
			}
		}
		log.WithField("attempt", attempt).Warn("no usable exercises, regenerating")
	}

	return nil, lastErr
}

// validate runs the validator chain and returns the drafts that pass along
// with the last validation failure.
func (s *Service) validate(drafts []Draft, req exercise.Request, log logrus.FieldLogger) ([]Draft, *ValidationError) {
	var (
		valid   []Draft
		lastErr *ValidationError
	)
	for i := range drafts {
		d := &drafts[i]
		if verr := s.check(d, req); verr != nil {
			log.WithFields(logrus.Fields{
				"index":     i,
				"validator": verr.Validator,
			}).Warn(verr.Message)
			lastErr = verr
			continue
		}
		valid = append(valid, *d)
	}
	return valid, lastErr
}

func (s *Service) check(d *Draft, req exercise.Request) *ValidationError {
	for _, v := range s.config.Validators {
		if verr := v.Validate(d, req); verr != nil {
			return verr
		}
	}
	return nil
}

// assemble converts validated drafts to the wire shape, applying the
// base-form and hint options.
func (s *Service) assemble(drafts []Draft, req exercise.Request) []exercise.Item {
	items := make([]exercise.Item, 0, len(drafts))
	for _, d := range drafts {
		text := d.Text
		if req.IncludeBaseForm {
			text = InsertBaseForms(text, d.Answers)
		}

		item := exercise.Item{
			Text:    text,
			Answers: make([]exercise.ItemAnswer, 0, len(d.Answers)),
			Hints:   []exercise.ItemHint{},
		}
		for _, a := range d.Answers {
			item.Answers = append(item.Answers, exercise.ItemAnswer{
				Position:    a.Position,
				Answer:      strings.TrimSpace(a.Answer),
				Explanation: a.Explanation,
			})
		}
		if req.IncludeHints {
			item.Hints = uniqueHints(d.Hints)
		}
		items = append(items, item)
	}
	return items
}

// uniqueHints keeps the first hint per evidence value, ordered by evidence.
func uniqueHints(hints []DraftHint) []exercise.ItemHint {
	seen := make(map[int]bool, len(hints))
	out := make([]exercise.ItemHint, 0, len(hints))
	for _, h := range hints {
		if seen[h.Evidence] {
			continue
		}
		seen[h.Evidence] = true
		out = append(out, exercise.ItemHint{Evidence: h.Evidence, Hint: h.Hint})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Evidence < out[j].Evidence })
	return out
}

func providerKey(p exercise.Provider) string {
	return strings.ToLower(string(p))
}
