package llm

import (
	"fmt"
	"os"
	"sort"
	"time"
)

// Provider names accepted by NewProvider.
const (
	NameGroq      = "groq"
	NameOpenAI    = "openai"
	NameAnthropic = "anthropic"
	NameGemini    = "gemini"
	NameMock      = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	Groq       GroqConfig       `koanf:"groq"`
	OpenAI     OpenAIConfig     `koanf:"openai"`
	Anthropic  AnthropicConfig  `koanf:"anthropic"`
	Gemini     GeminiConfig     `koanf:"gemini"`
	Retry      RetryConfig      `koanf:"retry"`
	Resilience ResilienceConfig `koanf:"resilience"`

	// Timeout is the maximum duration for a single generation request
	// (including retries). Default: 90s.
	Timeout time.Duration `koanf:"timeout"`

	// MaxTokens is the token budget for exercise responses.
	MaxTokens int `koanf:"max_tokens"`
}

// GroqConfig holds Groq-specific configuration.
type GroqConfig struct {
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`    // Default: "llama-3.3-70b-versatile"
	BaseURL string `koanf:"base_url"` // Default: "https://api.groq.com/openai/v1"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `koanf:"base_url"` // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`    // Default: "claude-haiku"
	BaseURL string `koanf:"base_url"` // Optional. Override for proxies.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`    // Default: "gemini-flash"
	BaseURL string `koanf:"base_url"` // Optional.
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `koanf:"max_attempts"`
	InitialWait time.Duration `koanf:"initial_wait"`
	MaxWait     time.Duration `koanf:"max_wait"`
	Multiplier  float64       `koanf:"multiplier"`
}

// ResilienceConfig configures the circuit breaker and concurrency limit
// placed in front of each provider.
type ResilienceConfig struct {
	// FailureThreshold is the number of consecutive failures that opens
	// the circuit. Zero disables the breaker.
	FailureThreshold int `koanf:"failure_threshold"`

	// OpenTimeout is how long the circuit stays open before probing.
	OpenTimeout time.Duration `koanf:"open_timeout"`

	// MaxConcurrent caps in-flight requests per provider. Zero disables
	// the limit.
	MaxConcurrent int `koanf:"max_concurrent"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Groq: GroqConfig{
			Model:   "llama-3.3-70b-versatile",
			BaseURL: defaultGroqBaseURL,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Resilience: ResilienceConfig{
			FailureThreshold: 5,
			OpenTimeout:      30 * time.Second,
			MaxConcurrent:    4,
		},
		Timeout:   90 * time.Second,
		MaxTokens: 8192,
	}
}

// ApplyKeyFallbacks fills empty API keys from the providers' standard
// environment variables.
func (c *Config) ApplyKeyFallbacks() {
	fill := func(dst *string, env string) {
		if *dst == "" {
			*dst = os.Getenv(env)
		}
	}
	fill(&c.Groq.APIKey, "GROQ_API_KEY")
	fill(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	fill(&c.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	fill(&c.Gemini.APIKey, "GEMINI_API_KEY")
}

// Configured returns the names of providers with an API key, sorted.
func (c Config) Configured() []string {
	var names []string
	for name, key := range map[string]string{
		NameGroq:      c.Groq.APIKey,
		NameOpenAI:    c.OpenAI.APIKey,
		NameAnthropic: c.Anthropic.APIKey,
		NameGemini:    c.Gemini.APIKey,
	} {
		if key != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Validate checks that the named provider has its required API key set.
func (c Config) Validate(provider string) error {
	switch provider {
	case NameGroq:
		if c.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required for the groq provider")
		}
	case NameOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case NameAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case NameGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case NameMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", provider)
	}
	return nil
}
