package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

type AnthropicProvider struct {
	model string
	llm   *anthropic.LLM
}

func NewAnthropicProvider(apiKey, model string) (*AnthropicProvider, error) {
	client, err := anthropic.New(
		anthropic.WithToken(apiKey),
		anthropic.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("init anthropic client: %w", err)
	}
	return &AnthropicProvider{model: model, llm: client}, nil
}

func (a *AnthropicProvider) Resolve(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, a.llm, prompt,
		llms.WithMaxTokens(1000),
		llms.WithTemperature(0.1),
	)
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}
	return out, nil
}

func (a *AnthropicProvider) Name() string {
	return "anthropic/" + a.model
}
