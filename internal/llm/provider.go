// Package llm talks to the hosted language models that write exercises.
// Every backend answers a single-turn prompt with JSON that is checked
// against a schema before it is handed back.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is one configured model backend.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model requests are sent to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema requests structured output. Nil means free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64

	// TopP is ignored when zero.
	TopP float64
}

// Schema is a named JSON Schema document.
type Schema struct {
	// Name doubles as the OpenAI response format name and the compile
	// cache key, e.g. "fill-in-exercises".
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is why the model stopped writing.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a completed generation.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage is the token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish validates raw output and assembles the Response. Output cut off
// at the token budget is reported as KindTruncated since it cannot parse.
func finish(provider string, req Request, raw string, stop StopReason, usage Usage, model string) (*Response, error) {
	if req.Schema == nil {
		quoted, _ := json.Marshal(raw)
		return &Response{Content: quoted, Usage: usage, Model: model, StopReason: stop}, nil
	}
	if stop == StopMaxTokens {
		return nil, &Error{
			Kind:     KindTruncated,
			Provider: provider,
			Content:  json.RawMessage(raw),
		}
	}
	content, err := conform(provider, req.Schema, raw)
	if err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
