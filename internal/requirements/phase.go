package requirements

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/insight-mcp/insight/internal/llm"
	"github.com/insight-mcp/insight/internal/phase"
	"github.com/insight-mcp/insight/internal/templates"
)

// Tool names of the pipeline tools.
const (
	ToolGenerate = "generate_requirements"
	ToolAssess   = "assess_requirements"
)

// Argument names of the pipeline tools.
const (
	ArgBriefPath        = "brief_path"
	ArgRequirementsPath = "requirements_path"
)

var errNoModel = errors.New("no language model configured")

// Phase is the requirements phase: the get_prompt catalog tool plus the two
// pipeline tools.
type Phase struct {
	*phase.PromptPhase
	renderer templates.Renderer
	opts     []Option
}

var _ phase.Handler = (*Phase)(nil)

// NewPhase creates the requirements phase. opts are applied to the pipeline
// built for each call.
func NewPhase(renderer templates.Renderer, opts ...Option) *Phase {
	return &Phase{
		PromptPhase: phase.NewPromptPhase(phase.RequirementsDefinition()),
		renderer:    renderer,
		opts:        opts,
	}
}

// Tools implements phase.Handler.
func (p *Phase) Tools() []mcp.Tool {
	return []mcp.Tool{
		p.PromptPhase.Definition(),
		mcp.NewTool(ToolGenerate,
			mcp.WithDescription(
				"Generate a requirements document from a product brief. "+
					"The brief is drafted into requirements, reviewed, and written to "+
					"requirements.md next to the brief. Returns the path of the written file.",
			),
			mcp.WithString(ArgBriefPath,
				mcp.Required(),
				mcp.Description("Path to the product brief file"),
			),
		),
		mcp.NewTool(ToolAssess,
			mcp.WithDescription(
				"Assess the quality and completeness of a requirements document. "+
					"Accepts a file or a directory; every file in a directory is assessed together.",
			),
			mcp.WithString(ArgRequirementsPath,
				mcp.Required(),
				mcp.Description("Path to the requirements document, or a directory of documents, to assess"),
			),
		),
	}
}

// Pipeline returns a pipeline bound to model.
func (p *Phase) Pipeline(model llm.Client) *Pipeline {
	return NewPipeline(model, p.renderer, p.opts...)
}

// TryHandle implements phase.Handler.
func (p *Phase) TryHandle(ctx context.Context, req mcp.CallToolRequest, model llm.Client) (phase.Outcome, error) {
	switch req.Params.Name {
	case ToolGenerate:
		briefPath, err := phase.RequireString(req.GetArguments(), ArgBriefPath)
		if err != nil {
			return phase.NotHandled(), err
		}
		if model == nil {
			return phase.NotHandled(), errNoModel
		}
		run, err := p.Pipeline(model).Generate(ctx, briefPath)
		if err != nil {
			return phase.NotHandled(), err
		}
		return phase.Handled(mcp.NewToolResultText(run.OutputPath)), nil

	case ToolAssess:
		path, err := phase.RequireString(req.GetArguments(), ArgRequirementsPath)
		if err != nil {
			return phase.NotHandled(), err
		}
		if model == nil {
			return phase.NotHandled(), errNoModel
		}
		assessment, err := p.Pipeline(model).Assess(ctx, path)
		if err != nil {
			return phase.NotHandled(), err
		}
		return phase.Handled(mcp.NewToolResultText(assessment)), nil

	default:
		return p.PromptPhase.TryHandle(ctx, req, model)
	}
}
