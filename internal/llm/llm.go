// Package llm defines the single capability the rest of insight needs from a
// language model: turn a prompt into text.
//
// Provider adapters live in sub-packages (openai, anthropic, gemini, ollama)
// and are selected by the providers package. Everything else depends only on
// the Client interface, never on provider identity.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedProvider is returned when a provider name is not one of the
// supported providers.
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

// ErrEmptyResponse is returned by adapters when the model answered with no
// text at all.
var ErrEmptyResponse = errors.New("empty response from model")

// Provider names accepted in configuration.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

// Default generation settings.
const (
	DefaultTemperature = 0.5
	DefaultMaxTokens   = 4096
)

// defaultModels maps each provider to the model used when none is configured.
var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4o",
	ProviderAnthropic: "claude-3-5-sonnet-latest",
	ProviderGemini:    "gemini-2.0-flash",
	ProviderOllama:    "llama3.1",
}

// Client generates text from a single prompt.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Config selects and tunes a provider.
type Config struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderOpenAI,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Providers returns the supported provider names.
func Providers() []string {
	return []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama}
}

// DefaultModel returns the model used for provider when none is configured.
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// Normalize lower-cases the provider, fills in the default model and
// validates the provider name.
func (c Config) Normalize() (Config, error) {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	model := DefaultModel(c.Provider)
	if model == "" {
		return c, fmt.Errorf("%w: %s (supported: %s)",
			ErrUnsupportedProvider, c.Provider, strings.Join(Providers(), ", "))
	}
	if strings.TrimSpace(c.Model) == "" {
		c.Model = model
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	return c, nil
}

// --- Function adapter and middleware ---

// ClientFunc adapts a plain function to the Client interface. The model name
// reported is ModelName, or "func" when empty.
type ClientFunc struct {
	Fn        func(ctx context.Context, prompt string) (string, error)
	ModelName string
}

// GenerateText calls Fn.
func (f ClientFunc) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f.Fn(ctx, prompt)
}

// Model returns ModelName.
func (f ClientFunc) Model() string {
	if f.ModelName == "" {
		return "func"
	}
	return f.ModelName
}

// Middleware decorates a Client.
type Middleware func(next Client) Client

// Chain wraps client with the given middleware. The first middleware is the
// outermost one.
func Chain(client Client, mws ...Middleware) Client {
	for i := len(mws) - 1; i >= 0; i-- {
		client = mws[i](client)
	}
	return client
}
