package metrics

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/insight-mcp/insight/internal/llm"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Middleware returns an llm.Middleware that records latency, estimated token
// usage and failures of every model request. logger may be nil.
func Middleware(r *Recorder, logger *slog.Logger) llm.Middleware {
	return func(next llm.Client) llm.Client {
		return llm.ClientFunc{
			ModelName: next.Model(),
			Fn: func(ctx context.Context, prompt string) (string, error) {
				start := time.Now()
				text, err := next.GenerateText(ctx, prompt)
				elapsed := time.Since(start)

				var promptTokens, completionTokens int
				errType := ""
				if err != nil {
					errType = errorType(err)
				} else {
					promptTokens = CountTokens(prompt)
					completionTokens = CountTokens(text)
				}
				r.ObserveRequest(next.Model(), promptTokens, completionTokens, errType, elapsed)

				if logger != nil {
					logger.Debug("llm request",
						"model", next.Model(),
						"prompt_tokens", promptTokens,
						"completion_tokens", completionTokens,
						"error_type", errType,
						"duration", elapsed.Round(time.Millisecond))
				}
				return text, err //nolint:wrapcheck // middleware passes errors through unchanged
			},
		}
	}
}

// errorType classifies err for the error_type label.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, llm.ErrEmptyResponse):
		return "empty_response"
	default:
		return "provider"
	}
}
