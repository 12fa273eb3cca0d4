package phase

import "github.com/insight-mcp/insight/internal/catalog"

// Tool names of the prompt phases.
const (
	ToolGetConceptPrompt = "get_concept_prompt"
	ToolGetPrompt        = "get_prompt"
)

// ConceptDefinition declares the concept phase.
func ConceptDefinition() Definition {
	return Definition{
		ToolName:    ToolGetConceptPrompt,
		Description: "Get a prompt for the concept refinement phase",
		Catalog:     catalog.Concept(),
		ContextFields: []ContextField{
			{Name: "existing_brief", Description: "Existing brief content when updating"},
			{Name: "conversation", Description: "Relevant conversation history", List: true},
		},
		ContextPrompts: []string{catalog.ProductBrief},
	}
}

// RequirementsDefinition declares the get-prompt tool of the requirements
// phase. The pipeline tools are added by the requirements package.
func RequirementsDefinition() Definition {
	return Definition{
		ToolName: ToolGetPrompt,
		Description: "Get a prompt to help the user create requirements for a " +
			"software project",
		PromptDescription: "Name of the requirements prompt to get",
		Catalog:           catalog.Requirements(),
		ContextFields: []ContextField{
			{Name: "brief_path", Description: "Path to the product brief file"},
			{Name: "existing_requirements", Description: "Existing requirements content when updating"},
		},
		ContextPrompts: []string{catalog.RequirementsCreation},
	}
}

// ArchitectureDefinition declares the architecture phase.
func ArchitectureDefinition() Definition {
	return Definition{
		ToolName:          ToolGetPrompt,
		Description:       "Get a prompt to help the user architect a software project",
		PromptDescription: "Name of the architecture prompt to get",
		Catalog:           catalog.Architecture(),
	}
}

// ImplementationDefinition declares the implementation phase.
func ImplementationDefinition() Definition {
	return Definition{
		ToolName:          ToolGetPrompt,
		Description:       "Get a software implementation prompt",
		PromptDescription: "Name of the implementation prompt to get",
		Catalog:           catalog.Implementation(),
	}
}

// IntegrationTestDefinition declares the integration test phase.
func IntegrationTestDefinition() Definition {
	return Definition{
		ToolName:          ToolGetPrompt,
		Description:       "Get an integration test phase prompt",
		PromptDescription: "Name of the integration test phase prompt to get",
		Catalog:           catalog.IntegrationTest(),
	}
}

// Concept returns the concept phase dispatcher.
func Concept() *PromptPhase { return NewPromptPhase(ConceptDefinition()) }

// Architecture returns the architecture phase dispatcher.
func Architecture() *PromptPhase { return NewPromptPhase(ArchitectureDefinition()) }

// Implementation returns the implementation phase dispatcher.
func Implementation() *PromptPhase { return NewPromptPhase(ImplementationDefinition()) }

// IntegrationTest returns the integration test phase dispatcher.
func IntegrationTest() *PromptPhase { return NewPromptPhase(IntegrationTestDefinition()) }
