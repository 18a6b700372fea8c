// Package llm wraps the external language-model collaborators the
// orchestrator core delegates to. The core itself never calls a model; it
// only emits llm_query / llm_summarize action descriptors with a prompt,
// and the serving shell resolves them through a Provider.
package llm

import (
	"context"
	"fmt"

	"github.com/voiceking/voiceking-orchestrator/internal/config"
)

// Provider resolves a constructed prompt to plain speakable text.
type Provider interface {
	Resolve(ctx context.Context, prompt string) (string, error)
	Name() string
}

// NewProvider builds the provider named by the configuration.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.AIProvider {
	case config.ProviderClaude:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for provider %q", cfg.AIProvider)
		}
		return NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for provider %q", cfg.AIProvider)
		}
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AIProvider)
	}
}
