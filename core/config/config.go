package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	OTel      OTelConfig
	LLM       LLMConfig
	Retrieval RetrievalConfig
	Cache     CacheConfig
	Env       string
	Port      string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type LLMConfig struct {
	Provider  string // "openai" or "anthropic"
	APIKey    string
	BaseURL   string // Optional: for custom endpoints
	Model     string
	MaxTokens int
}

type RetrievalConfig struct {
	URL         string
	APIKey      string
	Collection  string
	TopK        int
	MaxDistance float64
}

type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

// Load loads configuration from environment variables.
// In development it loads from .env first. Every setting has a default or
// degrades gracefully when unset, so Load never fails: a missing LLM key or
// retrieval endpoint puts the pipeline in fallback mode rather than blocking
// startup.
func Load() Config {
	if getEnv("MENTOR_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	return Config{
		Env:  getEnv("MENTOR_ENV", "development"),
		Port: getEnv("PORT", "8080"),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "mentor"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		LLM: LLMConfig{
			Provider:  getEnv("MENTOR_LLM_PROVIDER", "openai"),
			APIKey:    getEnv("MENTOR_LLM_API_KEY", ""),
			BaseURL:   getEnv("MENTOR_LLM_BASE_URL", ""),
			Model:     getEnv("MENTOR_LLM_MODEL", ""),
			MaxTokens: getEnvInt("MENTOR_LLM_MAX_TOKENS", 2048),
		},
		Retrieval: RetrievalConfig{
			URL:         getEnv("TYPESENSE_URL", ""),
			APIKey:      getEnv("TYPESENSE_API_KEY", ""),
			Collection:  getEnv("RAG_COLLECTION", "docs"),
			TopK:        getEnvInt("RAG_TOP_K", 5),
			MaxDistance: getEnvFloat("RAG_MAX_DISTANCE", 0.35),
		},
		Cache: CacheConfig{
			RedisURL: getEnv("REDIS_URL", ""),
			TTL:      time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		},
	}
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

func (c RetrievalConfig) Enabled() bool {
	return c.URL != "" && c.APIKey != ""
}

func (c CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
