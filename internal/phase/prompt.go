package phase

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/insight-mcp/insight/internal/catalog"
	"github.com/insight-mcp/insight/internal/llm"
)

// ContextField describes one recognized sub-field of the optional context
// argument.
type ContextField struct {
	Name        string
	Description string
	// List marks an array of strings; otherwise the field is a string.
	List bool
}

// Definition declares a prompt phase.
type Definition struct {
	// ToolName is the MCP tool the phase answers to.
	ToolName string
	// Description is the tool description shown to clients.
	Description string
	// PromptDescription describes the prompt_name argument.
	PromptDescription string
	// Catalog holds the phase's prompts; its name is the phase name.
	Catalog *catalog.Catalog
	// ContextFields are the recognized context sub-fields. A phase without
	// any does not advertise a context argument.
	ContextFields []ContextField
	// ContextPrompts are the prompts that embed a supplied context.
	ContextPrompts []string
}

// PromptPhase serves catalog lookups through a single get-prompt tool.
type PromptPhase struct {
	def     Definition
	injects map[string]bool
}

// NewPromptPhase builds a phase from its definition.
func NewPromptPhase(def Definition) *PromptPhase {
	injects := make(map[string]bool, len(def.ContextPrompts))
	for _, id := range def.ContextPrompts {
		injects[id] = true
	}
	return &PromptPhase{def: def, injects: injects}
}

// Name implements Handler.
func (p *PromptPhase) Name() string { return p.def.Catalog.Name() }

// Catalog implements Handler.
func (p *PromptPhase) Catalog() *catalog.Catalog { return p.def.Catalog }

// ToolName returns the name of the get-prompt tool.
func (p *PromptPhase) ToolName() string { return p.def.ToolName }

// Tools implements Handler.
func (p *PromptPhase) Tools() []mcp.Tool {
	return []mcp.Tool{p.Definition()}
}

// Definition returns the get-prompt tool descriptor. The prompt_name enum is
// the catalog's key set in sorted order.
func (p *PromptPhase) Definition() mcp.Tool {
	desc := p.def.PromptDescription
	if desc == "" {
		desc = "Name of the prompt to get"
	}

	opts := []mcp.ToolOption{
		mcp.WithDescription(p.def.Description),
		mcp.WithString(ArgPromptName,
			mcp.Required(),
			mcp.Description(desc),
			mcp.Enum(p.def.Catalog.IDs()...),
		),
	}
	if len(p.def.ContextFields) > 0 {
		opts = append(opts, mcp.WithObject(ArgContext,
			mcp.Description("Optional context embedded into prompts that accept it"),
			mcp.Properties(ContextProperties(p.def.ContextFields)),
		))
	}
	return mcp.NewTool(p.def.ToolName, opts...)
}

// ContextProperties renders fields as JSON-schema properties.
func ContextProperties(fields []ContextField) map[string]any {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		if f.List {
			props[f.Name] = map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": f.Description,
			}
			continue
		}
		props[f.Name] = map[string]any{
			"type":        "string",
			"description": f.Description,
		}
	}
	return props
}

// TryHandle implements Handler. Calls for another tool, or for a prompt this
// phase does not own, are declined. A context that is not a JSON object is
// rejected with ErrInvalidArgument.
func (p *PromptPhase) TryHandle(_ context.Context, req mcp.CallToolRequest, _ llm.Client) (Outcome, error) {
	if req.Params.Name != p.def.ToolName {
		return NotHandled(), nil
	}

	args := req.GetArguments()
	id, err := RequireString(args, ArgPromptName)
	if err != nil {
		return NotHandled(), err
	}
	if !p.def.Catalog.Has(id) {
		return NotHandled(), nil
	}

	ctxValue := args[ArgContext]
	if ctxValue != nil {
		if _, ok := ctxValue.(map[string]any); !ok {
			return NotHandled(), fmt.Errorf("%w: %s must be an object", ErrInvalidArgument, ArgContext)
		}
	}

	body, err := p.Render(id, ctxValue)
	if err != nil {
		return NotHandled(), err
	}
	return Handled(mcp.NewToolResultText(body)), nil
}

// AcceptsContext reports whether prompt id embeds a supplied context.
func (p *PromptPhase) AcceptsContext(id string) bool { return p.injects[id] }

// Render returns prompt id, with ctxValue appended when the prompt accepts
// context and ctxValue is non-nil.
func (p *PromptPhase) Render(id string, ctxValue any) (string, error) {
	prompt, err := p.def.Catalog.Lookup(id)
	if err != nil {
		return "", err
	}
	if ctxValue == nil || !p.injects[id] {
		return prompt, nil
	}
	return WithContext(prompt, ctxValue)
}
