package llm

import "errors"

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// NewGroqProvider targets Groq's OpenAI-compatible API. Groq's Llama
// models only guarantee json_object output, so the schema travels in the
// system prompt and is enforced on our side.
func NewGroqProvider(cfg GroqConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("groq API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: baseURL})
	if err != nil {
		return nil, err
	}
	p.name = NameGroq
	p.strict = false
	return p, nil
}
