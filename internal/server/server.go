// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it builds the model client, the phases and
// the router, and registers tools, prompts and resources. No business logic
// lives here, only wiring.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/insight-mcp/insight/internal/config"
	"github.com/insight-mcp/insight/internal/llm"
	"github.com/insight-mcp/insight/internal/llm/providers"
	"github.com/insight-mcp/insight/internal/metrics"
	"github.com/insight-mcp/insight/internal/prompts"
	"github.com/insight-mcp/insight/internal/requirements"
	"github.com/insight-mcp/insight/internal/resources"
	"github.com/insight-mcp/insight/internal/router"
	"github.com/insight-mcp/insight/internal/templates"
)

// Name is the server name reported to MCP clients.
const Name = "insight"

// Version is set at build time via ldflags.
var Version = "dev"

// Option customizes New.
type Option func(*options)

type options struct {
	model    llm.Client
	recorder *metrics.Recorder
}

// WithModel uses model instead of building one from the configuration.
func WithModel(model llm.Client) Option {
	return func(o *options) { o.model = model }
}

// WithRecorder records metrics on r. By default a recorder is created only
// when a metrics address is configured.
func WithRecorder(r *metrics.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// NewModel builds the configured model client, wrapped with the metrics
// middleware when recorder is non-nil.
func NewModel(ctx context.Context, cfg llm.Config, recorder *metrics.Recorder, logger *slog.Logger) (llm.Client, error) {
	client, err := providers.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if recorder == nil {
		return client, nil
	}
	return llm.Chain(client, metrics.Middleware(recorder, logger)), nil
}

// New creates and configures the MCP server with all tools, prompts and
// resources registered.
//
// The returned cleanup function stops the metrics endpoint, if one was
// started, and must be called on shutdown. It is always non-nil.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*server.MCPServer, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.recorder == nil && cfg.MetricsAddr != "" {
		o.recorder = metrics.NewRecorder()
	}

	// --- Create shared dependencies ---

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, noop, fmt.Errorf("creating template renderer: %w", err)
	}

	model := o.model
	if model == nil {
		model, err = NewModel(ctx, cfg.LLM, o.recorder, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("creating model client: %w", err)
		}
	} else if o.recorder != nil {
		model = llm.Chain(model, metrics.Middleware(o.recorder, logger))
	}

	routerOpts := []router.Option{router.WithLogger(logger)}
	if o.recorder != nil {
		routerOpts = append(routerOpts, router.WithObserver(o.recorder))
	}
	phases := router.DefaultPhases(renderer, requirements.WithLogger(logger))
	rt := router.New(model, phases, routerOpts...)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	rt.Register(s)

	// --- Register prompts ---

	workflow := prompts.NewWorkflowPrompt()
	s.AddPrompt(workflow.Definition(), workflow.Handle)

	for _, p := range prompts.CatalogPrompts(rt.Phases()) {
		s.AddPrompt(p.Definition(), p.Handle)
	}

	// --- Register resources ---

	resourceHandler := resources.NewHandler(rt.Phases())
	s.AddResource(resourceHandler.PhasesResource(), resourceHandler.HandlePhases)

	// --- Metrics endpoint ---

	cleanup := noop
	if cfg.MetricsAddr != "" {
		stop, err := ServeMetrics(cfg.MetricsAddr, o.recorder, logger)
		if err != nil {
			return nil, noop, err
		}
		cleanup = stop
	}

	logger.Info("server ready",
		"version", Version,
		"provider", cfg.LLM.Provider,
		"model", model.Model(),
		"metrics_addr", cfg.MetricsAddr)
	return s, cleanup, nil
}

// ServeMetrics exposes recorder on addr under /metrics and returns a
// function that shuts the listener down.
func ServeMetrics(addr string, recorder *metrics.Recorder, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on metrics address %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

// noop is the cleanup function used when nothing needs closing.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use insight.
func serverInstructions() string {
	return `You have access to insight, a prompt catalog and requirements pipeline for software projects.

## PHASES

Work through the phases in this order. Each phase is a set of prompts you
fetch with a tool and then follow.

1. Concept: get_concept_prompt
   - concept_refinement: explore the idea with the user
   - concept_assessment: rate whether the concept is ready for requirements
   - product_brief: write the brief (pass context.existing_brief and
     context.conversation when updating)
2. Requirements
   - generate_requirements(brief_path): drafts and reviews requirements from
     the brief and writes requirements.md next to it. Returns the path.
   - assess_requirements(requirements_path): assesses a file or a directory
     of files. Returns the assessment.
   - get_prompt with requirements_creation, requirements_intermediate_review
     or requirements_assessment when you want to run a step yourself
3. Architecture: get_prompt with architecture_level_identification,
   level_architecture, level_architecture_assessment, interface_review
4. Implementation: get_prompt with mock_library_creation,
   paired_implementation, mock_consistency_check
5. Integration tests: get_prompt with integration_testing

## RULES

- Do not skip phases without asking the user.
- Prompts are instructions for you; follow them, do not paste them back.
- generate_requirements and assess_requirements call a language model and
  can take a while. Tell the user before calling them.
- The insight://phases resource lists every phase, tool and prompt name.`
}
