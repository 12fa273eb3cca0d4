package templates

import (
	"strings"
	"testing"
)

// --- NewRenderer ---

func TestNewRenderer_Succeeds(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() failed: %v", err)
	}
	if r == nil {
		t.Fatal("NewRenderer() returned nil")
	}
}

// --- Render: each step ---

func TestRender_Steps(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	tests := []struct {
		name    string
		heading string
	}{
		{Creation, "## Product Brief"},
		{Review, "## Requirements Document"},
		{Assessment, "## Requirements Under Assessment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := StepData{
				Instructions: "Do the thing.",
				Input:        "A todo app for teams.",
			}

			result, err := r.Render(tt.name, data)
			if err != nil {
				t.Fatalf("Render(%s) failed: %v", tt.name, err)
			}

			if !strings.HasPrefix(result, "Do the thing.") {
				t.Errorf("output should start with the instructions, got %q", result)
			}
			if !strings.Contains(result, tt.heading) {
				t.Errorf("output missing heading %q", tt.heading)
			}
			if !strings.HasSuffix(strings.TrimSpace(result), "A todo app for teams.") {
				t.Errorf("output should end with the input, got %q", result)
			}

			instr := strings.Index(result, "Do the thing.")
			input := strings.Index(result, "A todo app for teams.")
			if instr > input {
				t.Error("instructions should come before the input")
			}
		})
	}
}

// --- Render: input is not escaped ---

func TestRender_InputVerbatim(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	input := "Use <b>bold</b> & \"quotes\"\n\n{{not a template}}"
	result, err := r.Render(Review, StepData{Instructions: "Review.", Input: input})
	if err != nil {
		t.Fatalf("Render(Review) failed: %v", err)
	}
	if !strings.Contains(result, input) {
		t.Errorf("input should be rendered verbatim, got %q", result)
	}
}

// --- Render: Unknown template ---

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	_, err = r.Render("nonexistent.md.tmpl", nil)
	if err == nil {
		t.Fatal("Render(nonexistent) should fail")
	}
}

// --- Render: Empty data ---

func TestRender_EmptyData(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	result, err := r.Render(Creation, StepData{})
	if err != nil {
		t.Fatalf("Render(Creation, empty) failed: %v", err)
	}
	if !strings.Contains(result, "## Product Brief") {
		t.Error("empty data should still render the section header")
	}
}

// --- Renderer interface compliance ---

func TestEmbedRenderer_ImplementsRenderer(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	// Compile-time interface check.
	var _ Renderer = r
}
