// Package phase implements the per-phase tool dispatchers.
//
// A phase owns one prompt catalog and advertises one or more MCP tools over
// it. The router offers every call to each phase in a fixed order; a phase
// either handles the call or declines it with NotHandled so the next phase
// gets a chance.
package phase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/insight-mcp/insight/internal/catalog"
	"github.com/insight-mcp/insight/internal/llm"
)

// ErrMissingArgument is returned when a required tool argument is absent or
// has the wrong type.
var ErrMissingArgument = errors.New("missing required argument")

// ErrInvalidArgument is returned when an optional tool argument is present
// but does not match its declared schema.
var ErrInvalidArgument = errors.New("invalid argument")

// Argument names shared by the prompt tools.
const (
	ArgPromptName = "prompt_name"
	ArgContext    = "context"
)

// Outcome is the result of offering a call to a phase: either the phase
// handled it and produced a result, or it declined.
type Outcome struct {
	result  *mcp.CallToolResult
	handled bool
}

// Handled wraps the result of a call the phase claimed.
func Handled(result *mcp.CallToolResult) Outcome {
	return Outcome{result: result, handled: true}
}

// NotHandled reports that the phase does not own the call.
func NotHandled() Outcome {
	return Outcome{}
}

// IsHandled reports whether the phase claimed the call.
func (o Outcome) IsHandled() bool { return o.handled }

// Result returns the tool result; nil when the call was not handled.
func (o Outcome) Result() *mcp.CallToolResult { return o.result }

// Handler is one phase dispatcher.
type Handler interface {
	// Name is the phase name, e.g. "concept".
	Name() string
	// Tools returns fresh descriptors for the tools this phase exposes.
	Tools() []mcp.Tool
	// Catalog returns the phase's prompt catalog.
	Catalog() *catalog.Catalog
	// TryHandle handles the call or returns NotHandled. model is the shared
	// language model client; phases that never call a model ignore it.
	TryHandle(ctx context.Context, req mcp.CallToolRequest, model llm.Client) (Outcome, error)
}

// ExposesTool reports whether h advertises a tool called name.
func ExposesTool(h Handler, name string) bool {
	for _, t := range h.Tools() {
		if t.Name == name {
			return true
		}
	}
	return false
}

// RequireString returns the string argument key, or ErrMissingArgument if it
// is absent, not a string, or empty.
func RequireString(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrMissingArgument, key)
	}
	if s == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, key)
	}
	return s, nil
}

// WithContext appends the caller-supplied context to prompt as indented
// JSON. Object keys are emitted in sorted order.
func WithContext(prompt string, ctxValue any) (string, error) {
	data, err := json.MarshalIndent(ctxValue, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding context: %w", err)
	}
	return prompt + "\n\nContext:\n" + string(data), nil
}
