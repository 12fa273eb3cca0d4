package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insight-mcp/insight/internal/llm"
)

func TestNew_InvalidHost(t *testing.T) {
	_, err := New(llm.Config{Model: "llama3.1", BaseURL: "://bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing ollama host")
}

func TestClient_GenerateText(t *testing.T) {
	var got map[string]any
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":      "llama3.1",
			"created_at": "2024-01-01T00:00:00Z",
			"message":    map[string]any{"role": "assistant", "content": "local answer"},
			"done":       true,
		})
	}))
	defer srv.Close()

	c, err := New(llm.Config{Model: "llama3.1", Temperature: 0.5, MaxTokens: 128, BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := c.GenerateText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "local answer", out)
	assert.Equal(t, "llama3.1", c.Model())

	assert.Equal(t, "/api/chat", path)
	assert.Equal(t, "llama3.1", got["model"])
	assert.Equal(t, false, got["stream"])
	opts, ok := got["options"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 0.5, opts["temperature"], 1e-9)
	assert.EqualValues(t, 128, opts["num_predict"])
}
