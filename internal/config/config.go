package config

import (
	"os"
	"time"
)

// LLM provider names accepted in ai_provider / AI_PROVIDER.
const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
)

type Config struct {
	// NATS configuration
	NatsURL            string
	NatsRequestSubject string
	NatsContextSubject string
	NatsTimeout        time.Duration

	// Redis context store (optional; empty disables it)
	RedisURL   string
	ContextTTL time.Duration

	// LLM provider (optional; empty AIProvider disables delegation)
	AIProvider      string
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	LLMTimeout      time.Duration

	// Service configuration
	ServiceName         string
	MetricsAddr         string
	LogFormat           string
	DefaultSearchEngine string
}

func Load() *Config {
	return &Config{
		// NATS settings
		NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		NatsRequestSubject: getEnv("NATS_REQUEST_SUBJECT", "voiceking.command"),
		NatsContextSubject: getEnv("NATS_CONTEXT_SUBJECT", "voiceking.context"),
		NatsTimeout:        getDurationEnv("NATS_TIMEOUT", 30*time.Second),

		// Redis settings
		RedisURL:   getEnv("REDIS_URL", ""),
		ContextTTL: getDurationEnv("CONTEXT_TTL", 30*time.Minute),

		// LLM settings
		AIProvider:      getEnv("AI_PROVIDER", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		LLMTimeout:      getDurationEnv("LLM_TIMEOUT", 30*time.Second),

		// Service settings
		ServiceName:         getEnv("SERVICE_NAME", "voiceking-orchestrator"),
		MetricsAddr:         getEnv("METRICS_ADDR", ""),
		LogFormat:           getEnv("LOG_FORMAT", "json"),
		DefaultSearchEngine: getEnv("DEFAULT_SEARCH_ENGINE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
