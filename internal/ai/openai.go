package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIClient talks to any OpenAI-compatible chat endpoint.
type OpenAIClient struct {
	llm  llms.Model
	opts Options
}

func NewOpenAIClient(apiKey, baseURL, model string, opts Options) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	options := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL != "" {
		options = append(options, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIClient{llm: llm, opts: opts}, nil
}

func (o *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, o.llm, prompt,
		llms.WithTemperature(float64(o.opts.Temperature)),
		llms.WithMaxTokens(o.opts.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("openai generate failed: %w", err)
	}

	return cleanText(text)
}
