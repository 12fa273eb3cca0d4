// Insight: prompt catalog and requirements pipeline MCP server.
//
// Usage:
//
//	insight serve                 # Start MCP server (stdio transport)
//	insight generate <brief.md>   # Draft and review requirements.md next to the brief
//	insight assess <path>         # Assess a requirements file or directory
//	insight version
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/insight-mcp/insight/internal/config"
	"github.com/insight-mcp/insight/internal/metrics"
	"github.com/insight-mcp/insight/internal/requirements"
	insightserver "github.com/insight-mcp/insight/internal/server"
	"github.com/insight-mcp/insight/internal/templates"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath  string
	envFile     string
	logLevel    string
	metricsAddr string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Prompt catalog and requirements pipeline MCP server",
		Long: `Insight serves phase prompt catalogs to MCP clients and runs a
two-step requirements pipeline (draft then review) against a language model.

Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "insight": {
        "command": "insight",
        "args": ["serve"]
      }
    }
  }`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	pf.StringVar(&flags.envFile, "env-file", "", "Env file to load (default .env if present)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.metricsAddr, "metrics-addr", "", "Address to serve Prometheus metrics on")

	cmd.AddCommand(
		serveCmd(flags),
		generateCmd(flags),
		assessCmd(flags),
		versionCmd(),
	)
	return cmd
}

func serveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	s, cleanup, err := insightserver.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// stdout carries the MCP transport; logs go to stderr.
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))

	err = stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func generateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <brief>",
		Short: "Generate requirements.md from a product brief",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, cleanup, err := newPipeline(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			run, err := pipeline.Generate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), run.OutputPath)
			return nil
		},
	}
}

func assessCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "assess <path>",
		Short: "Assess a requirements file or a directory of requirements files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, cleanup, err := newPipeline(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			assessment, err := pipeline.Assess(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), assessment)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", insightserver.Name, insightserver.Version)
		},
	}
}

// newPipeline builds a requirements pipeline for one-shot CLI runs. When a
// metrics address is set the endpoint stays up until cleanup is called.
func newPipeline(ctx context.Context, flags *globalFlags, stderr io.Writer) (*requirements.Pipeline, func(), error) {
	cfg, logger, err := setup(flags, stderr)
	if err != nil {
		return nil, nil, err
	}

	var recorder *metrics.Recorder
	cleanup := func() {}
	if cfg.MetricsAddr != "" {
		recorder = metrics.NewRecorder()
		stop, err := insightserver.ServeMetrics(cfg.MetricsAddr, recorder, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup = stop
	}

	model, err := insightserver.NewModel(ctx, cfg.LLM, recorder, logger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("creating model client: %w", err)
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("creating template renderer: %w", err)
	}
	return requirements.NewPipeline(model, renderer, requirements.WithLogger(logger)), cleanup, nil
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func setup(flags *globalFlags, stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath, flags.envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.metricsAddr != "" {
		cfg.MetricsAddr = flags.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
