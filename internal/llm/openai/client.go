// Package openai adapts the official OpenAI Go SDK to llm.Client.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/insight-mcp/insight/internal/llm"
)

// Client sends each prompt as a single user message to the Chat
// Completions API.
type Client struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// New creates an OpenAI client. An empty APIKey falls back to the SDK's own
// OPENAI_API_KEY lookup. SDK retries are disabled; failures surface to the
// caller unchanged.
func New(cfg llm.Config) *Client {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// GenerateText implements llm.Client.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	}
	if c.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(c.maxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", llm.ErrEmptyResponse)
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("openai: %w", llm.ErrEmptyResponse)
	}
	return text, nil
}

// Model implements llm.Client.
func (c *Client) Model() string {
	return c.model
}
