// Package prompts implements the MCP prompts of insight.
//
// MCP prompts are user-triggered (like slash commands), unlike tools which
// the AI calls. Every catalog entry is offered as a prompt, plus a workflow
// prompt that walks the user through the phases in order.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// WorkflowName is the name of the workflow prompt.
const WorkflowName = "insight-workflow"

// WorkflowPrompt handles the insight-workflow MCP prompt.
// It instructs the AI to drive a project through the phases in order.
type WorkflowPrompt struct{}

// NewWorkflowPrompt creates a WorkflowPrompt.
func NewWorkflowPrompt() *WorkflowPrompt {
	return &WorkflowPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *WorkflowPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt(WorkflowName,
		mcp.WithPromptDescription(
			"Take a software idea from concept to integration tests. "+
				"Walks through the concept, requirements, architecture, implementation "+
				"and integration test phases using the insight tools.",
		),
		mcp.WithArgument("idea",
			mcp.ArgumentDescription("Your project idea, as vague or detailed as you like"),
		),
		mcp.WithArgument("workspace",
			mcp.ArgumentDescription("Directory where the brief and requirements should live. Default: the current directory"),
		),
	)
}

// Handle processes the insight-workflow prompt request.
func (p *WorkflowPrompt) Handle(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	idea := strings.TrimSpace(req.Params.Arguments["idea"])
	workspace := strings.TrimSpace(req.Params.Arguments["workspace"])
	if workspace == "" {
		workspace = "."
	}

	opening := "I want to build a new piece of software."
	if idea != "" {
		opening = fmt.Sprintf("I want to build the following:\n\n> %s", idea)
	}

	return &mcp.GetPromptResult{
		Description: "insight workflow",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"%s\n\n"+
						"Please guide me through it phase by phase:\n"+
						"1. Concept: call `get_concept_prompt` with `concept_refinement` and follow it until "+
						"`concept_assessment` rates the concept 9 or higher. Then use `product_brief` and save "+
						"the brief as `%s/brief.md`.\n"+
						"2. Requirements: call `generate_requirements` with the brief path, then "+
						"`assess_requirements` on the written `requirements.md`. Iterate until I'm satisfied.\n"+
						"3. Architecture: call `get_prompt` with `architecture_level_identification`, then "+
						"`level_architecture` and `level_architecture_assessment` for each level, and "+
						"`interface_review` once all levels are done.\n"+
						"4. Implementation: call `get_prompt` with `mock_library_creation`, "+
						"`paired_implementation` and `mock_consistency_check`.\n"+
						"5. Integration tests: call `get_prompt` with `integration_testing`.\n\n"+
						"Ask me before moving from one phase to the next.",
					opening, workspace,
				)),
			},
		},
	}, nil
}
