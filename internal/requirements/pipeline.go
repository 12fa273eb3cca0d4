// Package requirements runs the requirements pipeline and exposes it, along
// with the requirements prompt catalog, as a phase.
//
// Generate turns a product brief into a reviewed requirements document with
// two sequential model calls. Assess reads a requirements document, or a
// directory of them, and asks the model for an assessment.
package requirements

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/insight-mcp/insight/internal/catalog"
	"github.com/insight-mcp/insight/internal/llm"
	"github.com/insight-mcp/insight/internal/templates"
)

// OutputFile is the name of the document Generate writes next to the brief.
const OutputFile = "requirements.md"

var (
	// ErrResourceNotFound is returned when a brief or requirements path does
	// not exist.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrEmptyInput is returned when the text to assess is blank.
	ErrEmptyInput = errors.New("no readable requirements content found")
)

// Run is the state of one Generate call.
type Run struct {
	ID           string
	BriefPath    string
	BriefContent string
	// Generated is the draft produced by the creation step.
	Generated string
	// Reviewed is the final document produced by the review step.
	Reviewed string
	// OutputPath is where Reviewed was written.
	OutputPath string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithReadFile replaces the function used to read input files.
func WithReadFile(fn func(path string) ([]byte, error)) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.readFile = fn
		}
	}
}

// Pipeline runs the generate and assess flows against one model.
type Pipeline struct {
	model    llm.Client
	renderer templates.Renderer
	prompts  *catalog.Catalog
	logger   *slog.Logger
	readFile func(path string) ([]byte, error)
}

// NewPipeline creates a pipeline that calls model and renders step inputs
// with renderer.
func NewPipeline(model llm.Client, renderer templates.Renderer, opts ...Option) *Pipeline {
	p := &Pipeline{
		model:    model,
		renderer: renderer,
		prompts:  catalog.Requirements(),
		logger:   slog.Default(),
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate reads the brief at briefPath, drafts requirements from it,
// reviews the draft and writes the result to requirements.md in the brief's
// directory. Nothing is written unless both model calls succeed.
func (p *Pipeline) Generate(ctx context.Context, briefPath string) (*Run, error) {
	if err := requireFile(briefPath); err != nil {
		return nil, err
	}

	data, err := p.readFile(briefPath)
	if err != nil {
		return nil, fmt.Errorf("%w: brief file %s: %v", ErrResourceNotFound, briefPath, err)
	}

	run := &Run{
		ID:           uuid.NewString(),
		BriefPath:    briefPath,
		BriefContent: string(data),
	}
	logger := p.logger.With("run_id", run.ID)
	logger.Info("generating requirements", "brief", briefPath, "model", p.model.Model())
	start := time.Now()

	run.Generated, err = p.step(ctx, templates.Creation, catalog.RequirementsCreation, run.BriefContent)
	if err != nil {
		return nil, fmt.Errorf("creating requirements: %w", err)
	}
	logger.Debug("draft generated", "chars", len(run.Generated))

	run.Reviewed, err = p.step(ctx, templates.Review, catalog.RequirementsIntermediateReview, run.Generated)
	if err != nil {
		return nil, fmt.Errorf("reviewing requirements: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run.OutputPath = filepath.Join(filepath.Dir(briefPath), OutputFile)
	if err := writeAtomic(run.OutputPath, run.Reviewed); err != nil {
		return nil, fmt.Errorf("writing requirements: %w", err)
	}

	logger.Info("requirements written",
		"path", run.OutputPath,
		"duration", time.Since(start).Round(time.Millisecond))
	return run, nil
}

// Assess returns the model's assessment of the requirements at path. A
// directory is read as the concatenation of its regular files in name
// order; files that cannot be read are skipped with a warning.
func (p *Pipeline) Assess(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: requirements path %s", ErrResourceNotFound, path)
		}
		return "", fmt.Errorf("checking %s: %w", path, err)
	}

	var content string
	if info.IsDir() {
		content, err = p.readDir(ctx, path)
	} else {
		data, readErr := p.readFile(path)
		if readErr != nil {
			return "", fmt.Errorf("%w: requirements file %s: %v", ErrResourceNotFound, path, readErr)
		}
		content = string(data)
	}
	if err != nil {
		return "", fmt.Errorf("reading requirements %s: %w", path, err)
	}

	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyInput, path)
	}

	p.logger.Info("assessing requirements", "path", path, "model", p.model.Model())
	assessment, err := p.step(ctx, templates.Assessment, catalog.RequirementsAssessment, content)
	if err != nil {
		return "", fmt.Errorf("assessing requirements: %w", err)
	}
	return assessment, nil
}

// readDir concatenates every regular file in dir, each preceded by a
// "# From <name>:" marker.
func (p *Pipeline) readDir(ctx context.Context, dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		// Stat follows symlinks, so a link to a file counts as a file.
		info, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		data, err := p.readFile(filepath.Join(dir, name))
		if err != nil {
			p.logger.Warn("skipping unreadable requirements file", "file", name, "error", err)
			continue
		}
		b.WriteString("\n\n# From ")
		b.WriteString(name)
		b.WriteString(":\n\n")
		b.Write(data)
	}
	return b.String(), nil
}

// step renders the template with the catalog prompt and input, and runs it
// through the model.
func (p *Pipeline) step(ctx context.Context, tmpl, promptID, input string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	instructions, err := p.prompts.Lookup(promptID)
	if err != nil {
		return "", err
	}
	prompt, err := p.renderer.Render(tmpl, templates.StepData{
		Instructions: instructions,
		Input:        input,
	})
	if err != nil {
		return "", err
	}
	return p.model.GenerateText(ctx, prompt)
}

// requireFile fails with ErrResourceNotFound unless path is a regular file.
func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: brief file %s", ErrResourceNotFound, path)
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: brief %s is not a regular file", ErrResourceNotFound, path)
	}
	return nil
}

// writeAtomic replaces path with content via a temp file in the same
// directory, so readers never see a partial document. An existing file keeps
// its permissions; a new one gets 0644.
func writeAtomic(path, content string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("renaming %s: %w", tmpName, err)
	}
	return nil
}
