// Package gemini adapts the Google GenAI SDK (Gemini API backend) to
// llm.Client.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/insight-mcp/insight/internal/llm"
)

// Client wraps a genai.Client bound to one model.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// New creates a Gemini client. An empty APIKey falls back to the SDK's
// GEMINI_API_KEY / GOOGLE_API_KEY lookup; the SDK fails here if neither is
// set.
func New(ctx context.Context, cfg llm.Config) (*Client, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Client{
		client:      client,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens), //nolint:gosec // small configured value
	}, nil
}

// GenerateText implements llm.Client.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	temperature := c.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: c.maxTokens,
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if result == nil {
		return "", fmt.Errorf("gemini: %w", llm.ErrEmptyResponse)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: %w", llm.ErrEmptyResponse)
	}
	return text, nil
}

// Model implements llm.Client.
func (c *Client) Model() string {
	return c.model
}
