// Package anthropic adapts the Anthropic Claude SDK to llm.Client.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/insight-mcp/insight/internal/llm"
)

// Client sends each prompt as a single user turn to the Messages API.
type Client struct {
	client      anthropic.Client
	model       anthropic.Model
	temperature float64
	maxTokens   int64
}

// New creates a Claude client. An empty APIKey falls back to the SDK's own
// ANTHROPIC_API_KEY lookup.
func New(cfg llm.Config) *Client {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = llm.DefaultMaxTokens
	}

	return &Client{
		client:      anthropic.NewClient(opts...),
		model:       anthropic.Model(cfg.Model),
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
	}
}

// GenerateText implements llm.Client.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}
	if resp == nil || len(resp.Content) == 0 {
		return "", fmt.Errorf("anthropic: %w", llm.ErrEmptyResponse)
	}

	var sb strings.Builder
	for i := range resp.Content {
		block := &resp.Content[i]
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("anthropic: %w", llm.ErrEmptyResponse)
	}
	return sb.String(), nil
}

// Model implements llm.Client.
func (c *Client) Model() string {
	return string(c.model)
}
