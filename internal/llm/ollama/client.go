// Package ollama adapts a local Ollama runtime to llm.Client.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/insight-mcp/insight/internal/llm"
)

// Client talks to the Ollama chat endpoint without streaming.
type Client struct {
	client      *api.Client
	model       string
	temperature float64
	maxTokens   int
}

// New creates an Ollama client. BaseURL is the Ollama server URL; when empty
// the OLLAMA_HOST environment variable (or the Ollama default) is used.
func New(cfg llm.Config) (*Client, error) {
	var client *api.Client
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing ollama host %q: %w", cfg.BaseURL, err)
		}
		client = api.NewClient(u, http.DefaultClient)
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("creating ollama client: %w", err)
		}
	}

	return &Client{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// GenerateText implements llm.Client.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: []api.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
		Options: map[string]any{
			"temperature": c.temperature,
			"num_predict": c.maxTokens,
		},
	}

	var resp api.ChatResponse
	err := c.client.Chat(ctx, req, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}

	text := resp.Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("ollama: %w", llm.ErrEmptyResponse)
	}
	return text, nil
}

// Model implements llm.Client.
func (c *Client) Model() string {
	return c.model
}
