// Package router is the server shell: it owns the phase dispatchers and the
// shared model client, advertises the tools of every phase and routes each
// call through the phases in a fixed order.
package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/insight-mcp/insight/internal/catalog"
	"github.com/insight-mcp/insight/internal/llm"
	"github.com/insight-mcp/insight/internal/phase"
	"github.com/insight-mcp/insight/internal/requirements"
	"github.com/insight-mcp/insight/internal/templates"
)

// ErrUnknownTool is returned when no phase exposes the called tool.
var ErrUnknownTool = errors.New("unknown tool")

// Call statuses reported to the Observer.
const (
	StatusOK        = "ok"
	StatusToolError = "tool_error"
	StatusError     = "error"
)

// Observer is notified after every tool call that went through Handle.
type Observer interface {
	ObserveToolCall(tool, phase, status string, elapsed time.Duration)
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver registers an observer for tool calls.
func WithObserver(o Observer) Option {
	return func(r *Router) { r.observer = o }
}

// Router dispatches tool calls to phases.
type Router struct {
	phases   []phase.Handler
	model    llm.Client
	logger   *slog.Logger
	observer Observer
}

// New creates a router over phases, which are tried in the order given.
func New(model llm.Client, phases []phase.Handler, opts ...Option) *Router {
	r := &Router{
		phases: phases,
		model:  model,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultPhases returns the phases in dispatch order: concept,
// architecture, requirements, implementation, integration test.
func DefaultPhases(renderer templates.Renderer, opts ...requirements.Option) []phase.Handler {
	return []phase.Handler{
		phase.Concept(),
		phase.Architecture(),
		requirements.NewPhase(renderer, opts...),
		phase.Implementation(),
		phase.IntegrationTest(),
	}
}

// Phases returns the registered phases in dispatch order.
func (r *Router) Phases() []phase.Handler {
	out := make([]phase.Handler, len(r.phases))
	copy(out, r.phases)
	return out
}

// Model returns the shared model client.
func (r *Router) Model() llm.Client { return r.model }

// Tools returns the descriptors of every phase in dispatch order. Tool names
// repeat across phases; see Definitions for the merged set.
func (r *Router) Tools() []mcp.Tool {
	var tools []mcp.Tool
	for _, h := range r.phases {
		tools = append(tools, h.Tools()...)
	}
	return tools
}

// Call offers req to each phase in order and returns the first handled
// result along with the name of the phase that handled it. When no phase
// claims the call the error is catalog.ErrUnknownPrompt if some phase
// exposes the tool and a prompt name was given, and ErrUnknownTool
// otherwise.
func (r *Router) Call(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, string, error) {
	for _, h := range r.phases {
		out, err := h.TryHandle(ctx, req, r.model)
		if err != nil {
			return nil, h.Name(), err
		}
		if out.IsHandled() {
			return out.Result(), h.Name(), nil
		}
	}

	name := req.Params.Name
	if r.exposes(name) {
		if id, ok := req.GetArguments()[phase.ArgPromptName].(string); ok && id != "" {
			return nil, "", fmt.Errorf("%w: %s", catalog.ErrUnknownPrompt, id)
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
}

func (r *Router) exposes(tool string) bool {
	for _, h := range r.phases {
		if phase.ExposesTool(h, tool) {
			return true
		}
	}
	return false
}

// Handle is the MCP tool handler. Caller errors (missing arguments, unknown
// prompts or tools, missing paths, empty input) become tool error results;
// anything else is returned as an error.
func (r *Router) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	result, phaseName, err := r.Call(ctx, req)

	status := StatusOK
	switch {
	case err == nil:
		r.logger.Debug("tool call", "tool", req.Params.Name, "phase", phaseName)
	case IsCallerError(err):
		status = StatusToolError
		r.logger.Warn("tool call rejected", "tool", req.Params.Name, "phase", phaseName, "error", err)
		result, err = mcp.NewToolResultError(err.Error()), nil
	default:
		status = StatusError
		r.logger.Error("tool call failed", "tool", req.Params.Name, "phase", phaseName, "error", err)
	}

	if r.observer != nil {
		if phaseName == "" {
			phaseName = "none"
		}
		r.observer.ObserveToolCall(req.Params.Name, phaseName, status, time.Since(start))
	}
	return result, err
}

// IsCallerError reports whether err is caused by the caller's input rather
// than by the server or the model.
func IsCallerError(err error) bool {
	return errors.Is(err, phase.ErrMissingArgument) ||
		errors.Is(err, phase.ErrInvalidArgument) ||
		errors.Is(err, catalog.ErrUnknownPrompt) ||
		errors.Is(err, ErrUnknownTool) ||
		errors.Is(err, requirements.ErrResourceNotFound) ||
		errors.Is(err, requirements.ErrEmptyInput)
}

// Register adds the merged tool definitions to s, all handled by Handle.
func (r *Router) Register(s *server.MCPServer) {
	for _, tool := range r.Definitions() {
		s.AddTool(tool, r.Handle)
	}
}
