// Package templates renders the model inputs of the requirements pipeline.
//
// Each pipeline step pairs a catalog prompt (the instructions) with the text
// it operates on (a brief, a draft, a requirements document). The templates
// are embedded in the binary so the pipeline has no runtime file
// dependencies.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed steps/*.md.tmpl
var stepFS embed.FS

// Template names, one per pipeline step.
const (
	Creation   = "creation.md.tmpl"
	Review     = "review.md.tmpl"
	Assessment = "assessment.md.tmpl"
)

// Renderer renders a named template with the given data.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// StepData is the input of every step template.
type StepData struct {
	// Instructions is the catalog prompt for the step.
	Instructions string
	// Input is the text the step operates on.
	Input string
}

// EmbedRenderer renders the embedded step templates.
type EmbedRenderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*EmbedRenderer, error) {
	tmpl, err := template.New("").ParseFS(stepFS, "steps/*.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing step templates: %w", err)
	}
	return &EmbedRenderer{tmpl: tmpl}, nil
}

// Render executes the template called name.
func (r *EmbedRenderer) Render(name string, data any) (string, error) {
	t := r.tmpl.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}
