// Package providers builds the configured llm.Client.
package providers

import (
	"context"
	"fmt"

	"github.com/insight-mcp/insight/internal/llm"
	"github.com/insight-mcp/insight/internal/llm/anthropic"
	"github.com/insight-mcp/insight/internal/llm/gemini"
	"github.com/insight-mcp/insight/internal/llm/ollama"
	"github.com/insight-mcp/insight/internal/llm/openai"
)

// New returns a client for cfg.Provider. The config is normalized first, so
// an unknown provider fails with llm.ErrUnsupportedProvider.
func New(ctx context.Context, cfg llm.Config) (llm.Client, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case llm.ProviderOpenAI:
		return openai.New(cfg), nil
	case llm.ProviderAnthropic:
		return anthropic.New(cfg), nil
	case llm.ProviderGemini:
		client, err := gemini.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	case llm.ProviderOllama:
		client, err := ollama.New(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: %s", llm.ErrUnsupportedProvider, cfg.Provider)
	}
}
