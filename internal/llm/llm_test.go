package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Config
		wantProv  string
		wantModel string
		wantErr   bool
	}{
		{
			name:      "empty provider defaults to openai",
			in:        Config{},
			wantProv:  ProviderOpenAI,
			wantModel: "gpt-4o",
		},
		{
			name:      "provider is case insensitive",
			in:        Config{Provider: "  Anthropic "},
			wantProv:  ProviderAnthropic,
			wantModel: "claude-3-5-sonnet-latest",
		},
		{
			name:      "explicit model kept",
			in:        Config{Provider: "gemini", Model: "gemini-1.5-pro"},
			wantProv:  ProviderGemini,
			wantModel: "gemini-1.5-pro",
		},
		{
			name:      "ollama default model",
			in:        Config{Provider: "ollama"},
			wantProv:  ProviderOllama,
			wantModel: "llama3.1",
		},
		{
			name:    "unknown provider",
			in:      Config{Provider: "cohere"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnsupportedProvider)
				assert.Contains(t, err.Error(), "cohere")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantProv, got.Provider)
			assert.Equal(t, tt.wantModel, got.Model)
			assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.InDelta(t, 0.5, cfg.Temperature, 1e-9)
	assert.Equal(t, DefaultMaxTokens, cfg.MaxTokens)
}

func TestDefaultModel_EveryProvider(t *testing.T) {
	for _, p := range Providers() {
		assert.NotEmpty(t, DefaultModel(p), "provider %s has no default model", p)
	}
	assert.Empty(t, DefaultModel("unknown"))
}

func TestClientFunc(t *testing.T) {
	c := ClientFunc{Fn: func(_ context.Context, prompt string) (string, error) {
		return "echo:" + prompt, nil
	}}

	out, err := c.GenerateText(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo:hi", out)
	assert.Equal(t, "func", c.Model())

	c.ModelName = "stub"
	assert.Equal(t, "stub", c.Model())
}

func TestChain_Order(t *testing.T) {
	var calls []string
	tag := func(name string) Middleware {
		return func(next Client) Client {
			return ClientFunc{
				Fn: func(ctx context.Context, prompt string) (string, error) {
					calls = append(calls, name)
					return next.GenerateText(ctx, prompt)
				},
				ModelName: next.Model(),
			}
		}
	}

	base := ClientFunc{
		Fn: func(_ context.Context, _ string) (string, error) {
			calls = append(calls, "base")
			return "ok", nil
		},
		ModelName: "m",
	}

	client := Chain(base, tag("outer"), tag("inner"))
	out, err := client.GenerateText(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, []string{"outer", "inner", "base"}, calls)
	assert.Equal(t, "m", client.Model())
}

func TestChain_NoMiddleware(t *testing.T) {
	base := ClientFunc{Fn: func(context.Context, string) (string, error) { return "x", nil }, ModelName: "bare"}
	client := Chain(base)
	_, ok := client.(ClientFunc)
	assert.True(t, ok, "Chain without middleware should return the client unchanged")
	assert.Equal(t, "bare", client.Model())
}
