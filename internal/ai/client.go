package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"focus_forge/internal/config"
)

var (
	ErrNotConfigured = errors.New("ai provider not configured")
	ErrEmptyResponse = errors.New("ai returned no text")
)

// Generator turns one prompt into one reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Options struct {
	Temperature float32
	MaxTokens   int
}

var DefaultOptions = Options{
	Temperature: 0.7,
	MaxTokens:   400,
}

// New builds the configured provider wrapped with the request timeout.
func New(ctx context.Context, cfg *config.Config) (Generator, error) {
	if !cfg.AIConfigured() {
		return nil, ErrNotConfigured
	}

	var (
		gen Generator
		err error
	)
	switch cfg.AIProvider {
	case config.ProviderGemini:
		gen, err = NewGeminiClient(ctx, cfg.GeminiKey, cfg.GeminiModel, DefaultOptions)
	case config.ProviderOpenAI:
		gen, err = NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, DefaultOptions)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AIProvider)
	}
	if err != nil {
		return nil, err
	}

	return WithTimeout(gen, cfg.AITimeout), nil
}

type timeoutGenerator struct {
	next    Generator
	timeout time.Duration
}

func WithTimeout(next Generator, timeout time.Duration) Generator {
	if timeout <= 0 {
		return next
	}
	return &timeoutGenerator{next: next, timeout: timeout}
}

func (t *timeoutGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Generate(ctx, prompt)
}

func cleanText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
