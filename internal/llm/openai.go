package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

type OpenAIProvider struct {
	model string
	llm   *openai.LLM
}

func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("init openai client: %w", err)
	}
	return &OpenAIProvider{model: model, llm: client}, nil
}

func (o *OpenAIProvider) Resolve(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, o.llm, prompt,
		llms.WithMaxTokens(1000),
		llms.WithTemperature(0.1),
	)
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	return out, nil
}

func (o *OpenAIProvider) Name() string {
	return "openai/" + o.model
}
