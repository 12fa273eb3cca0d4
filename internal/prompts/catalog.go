package prompts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/insight-mcp/insight/internal/catalog"
	"github.com/insight-mcp/insight/internal/phase"
)

// Source is a phase whose catalog entries can be rendered as prompts.
type Source interface {
	Name() string
	Catalog() *catalog.Catalog
	AcceptsContext(id string) bool
	Render(id string, ctxValue any) (string, error)
}

// CatalogPrompt exposes one catalog entry as an MCP prompt named after the
// prompt identifier.
type CatalogPrompt struct {
	source Source
	id     string
}

// NewCatalogPrompt creates the prompt for entry id of source.
func NewCatalogPrompt(source Source, id string) *CatalogPrompt {
	return &CatalogPrompt{source: source, id: id}
}

// CatalogPrompts returns a prompt for every catalog entry of every phase
// that can render its entries, in phase order.
func CatalogPrompts(phases []phase.Handler) []*CatalogPrompt {
	var out []*CatalogPrompt
	for _, h := range phases {
		src, ok := h.(Source)
		if !ok {
			continue
		}
		for _, id := range src.Catalog().IDs() {
			out = append(out, NewCatalogPrompt(src, id))
		}
	}
	return out
}

// Definition returns the MCP prompt definition for registration.
func (p *CatalogPrompt) Definition() mcp.Prompt {
	opts := []mcp.PromptOption{
		mcp.WithPromptDescription(fmt.Sprintf("%s phase: %s",
			p.source.Name(), strings.ReplaceAll(p.id, "_", " "))),
	}
	if p.source.AcceptsContext(p.id) {
		opts = append(opts, mcp.WithArgument(phase.ArgContext,
			mcp.ArgumentDescription("Optional context as a JSON object, or plain text"),
		))
	}
	return mcp.NewPrompt(p.id, opts...)
}

// Handle returns the catalog entry as a single user message.
func (p *CatalogPrompt) Handle(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	var ctxValue any
	if raw := strings.TrimSpace(req.Params.Arguments[phase.ArgContext]); raw != "" {
		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			ctxValue = parsed
		} else {
			ctxValue = raw
		}
	}

	text, err := p.source.Render(p.id, ctxValue)
	if err != nil {
		return nil, err
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("%s (%s phase)", p.id, p.source.Name()),
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}
