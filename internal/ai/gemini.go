package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GeminiClient struct {
	client *genai.Client
	model  string
	opts   Options
}

func NewGeminiClient(ctx context.Context, apiKey, model string, opts Options) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{client: client, model: model, opts: opts}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(g.opts.Temperature),
			MaxOutputTokens: int32(g.opts.MaxTokens),
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	return cleanText(resp.Text())
}
