package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/langcoach/internal/store"
)

// NewProvider creates the named Provider from configuration.
// It returns the provider wrapped with retry, resilience and logging
// middleware.
func NewProvider(ctx context.Context, name string, cfg Config, events store.LLMEventWriter, log logrus.FieldLogger) (Provider, error) {
	var base Provider
	var err error

	switch name {
	case NameGroq:
		base, err = NewGroqProvider(cfg.Groq)
	case NameOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case NameAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case NameGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case NameMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", name, err)
	}

	return Wrap(base, name, cfg, events, log), nil
}

// Wrap applies the standard middleware chain to an already built provider.
func Wrap(base Provider, name string, cfg Config, events store.LLMEventWriter, log logrus.FieldLogger) Provider {
	// caller → retry → resilience → logging → base
	logged := WithLogging(base, name, events, log)
	guarded := WithResilience(logged, name, cfg.Resilience, log)
	return WithRetry(guarded, cfg.Retry)
}

// NewProviders builds every provider that has an API key configured, keyed
// by provider name. Providers that fail to initialize are logged and
// skipped.
func NewProviders(ctx context.Context, cfg Config, events store.LLMEventWriter, log logrus.FieldLogger) map[string]Provider {
	if log == nil {
		log = logrus.StandardLogger()
	}
	out := make(map[string]Provider)
	for _, name := range cfg.Configured() {
		p, err := NewProvider(ctx, name, cfg, events, log)
		if err != nil {
			log.WithError(err).WithField("provider", name).Warn("provider disabled")
			continue
		}
		out[name] = p
	}
	return out
}
