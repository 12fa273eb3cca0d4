// Package resources implements the MCP resources of insight.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (insight://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/insight-mcp/insight/internal/phase"
)

// PhasesURI is the address of the phase index.
const PhasesURI = "insight://phases"

// PhaseInfo describes one phase in the index.
type PhaseInfo struct {
	Name    string   `json:"name"`
	Tools   []string `json:"tools"`
	Prompts []string `json:"prompts"`
}

// Handler serves the insight resources.
type Handler struct {
	phases []phase.Handler
}

// NewHandler creates a resource Handler over phases, listed in dispatch
// order.
func NewHandler(phases []phase.Handler) *Handler {
	return &Handler{phases: phases}
}

// PhasesResource returns the MCP resource definition for the phase index.
func (h *Handler) PhasesResource() mcp.Resource {
	return mcp.NewResource(
		PhasesURI,
		"insight phases",
		mcp.WithResourceDescription("Workflow phases in order, with the tools and prompt names each one serves"),
		mcp.WithMIMEType("application/json"),
	)
}

// Index builds the phase index.
func (h *Handler) Index() []PhaseInfo {
	out := make([]PhaseInfo, 0, len(h.phases))
	for _, p := range h.phases {
		info := PhaseInfo{
			Name:    p.Name(),
			Tools:   []string{},
			Prompts: p.Catalog().IDs(),
		}
		for _, t := range p.Tools() {
			info.Tools = append(info.Tools, t.Name)
		}
		out = append(out, info)
	}
	return out
}

// HandlePhases returns the phase index as JSON.
func (h *Handler) HandlePhases(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(map[string]any{"phases": h.Index()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling phase index: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
