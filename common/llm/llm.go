package llm

import (
	"context"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Provider constants for LLM provider selection.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds LLM client configuration.
type Config struct {
	Provider  string // "openai" or "anthropic"
	APIKey    string // Required: API key for the provider
	BaseURL   string // Optional: custom API endpoint
	Model     string // Model name (e.g., "gpt-4o-mini", "claude-sonnet-4-5-20250514")
	MaxTokens int    // Default completion cap when a Request sets none
}

// Request is a single system+user completion exchange.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	SchemaName   string   // Optional: structured output schema name (OpenAI only)
	Schema       any      // Optional: JSON schema the response must conform to
	MaxTokens    int
	Temperature  *float64 // nil = model default, explicit 0 = deterministic
}

// Client produces free-text completions. Providers that support structured
// output honor Request.Schema; others return plain text and leave schema
// enforcement to the caller's parsing.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Model() string
}

// New creates a Client for the configured provider.
// Defaults to OpenAI if no provider is specified.
func New(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	provider := cfg.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}

	switch provider {
	case ProviderOpenAI:
		return newOpenAIClient(cfg)
	case ProviderAnthropic:
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

// GenerateSchema generates a JSON schema for T, suitable for Request.Schema.
func GenerateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

func Temp(t float64) *float64 {
	return &t
}
