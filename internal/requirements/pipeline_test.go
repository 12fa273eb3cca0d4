package requirements

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/insight-mcp/insight/internal/catalog"
	"github.com/insight-mcp/insight/internal/llm"
	"github.com/insight-mcp/insight/internal/templates"
)

// --- Test helpers ---

// recorder is a model stand-in that records every prompt and answers with
// the next canned reply.
type recorder struct {
	prompts []string
	replies []string
	err     error
}

func (r *recorder) client() llm.Client {
	return llm.ClientFunc{
		ModelName: "recorder",
		Fn: func(_ context.Context, prompt string) (string, error) {
			r.prompts = append(r.prompts, prompt)
			if r.err != nil {
				return "", r.err
			}
			i := len(r.prompts) - 1
			if i < len(r.replies) {
				return r.replies[i], nil
			}
			return fmt.Sprintf("reply %d", i+1), nil
		},
	}
}

func newTestPipeline(t *testing.T, model llm.Client, opts ...Option) *Pipeline {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return NewPipeline(model, renderer, opts...)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func catalogPrompt(t *testing.T, id string) string {
	t.Helper()
	body, err := catalog.Requirements().Lookup(id)
	if err != nil {
		t.Fatalf("Lookup(%s): %v", id, err)
	}
	return body
}

// --- Generate ---

func TestGenerate_CallOrderAndOutput(t *testing.T) {
	dir := t.TempDir()
	brief := filepath.Join(dir, "brief.md")
	writeFile(t, brief, "A shared shopping list app.")

	rec := &recorder{replies: []string{"DRAFT REQUIREMENTS", "FINAL REQUIREMENTS"}}
	run, err := newTestPipeline(t, rec.client()).Generate(context.Background(), brief)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(rec.prompts) != 2 {
		t.Fatalf("model called %d times, want 2", len(rec.prompts))
	}

	first := rec.prompts[0]
	if !strings.Contains(first, catalogPrompt(t, catalog.RequirementsCreation)) {
		t.Error("first call should use the requirements_creation prompt")
	}
	if !strings.Contains(first, "A shared shopping list app.") {
		t.Error("first call should carry the brief")
	}

	second := rec.prompts[1]
	if !strings.Contains(second, catalogPrompt(t, catalog.RequirementsIntermediateReview)) {
		t.Error("second call should use the requirements_intermediate_review prompt")
	}
	if !strings.Contains(second, "DRAFT REQUIREMENTS") {
		t.Error("second call should carry the first call's output")
	}
	if strings.Contains(second, "A shared shopping list app.") {
		t.Error("second call should not carry the brief")
	}

	if run.ID == "" {
		t.Error("run ID should be set")
	}
	if run.BriefContent != "A shared shopping list app." {
		t.Errorf("BriefContent = %q", run.BriefContent)
	}
	if run.Generated != "DRAFT REQUIREMENTS" {
		t.Errorf("Generated = %q, want %q", run.Generated, "DRAFT REQUIREMENTS")
	}
	if run.Reviewed != "FINAL REQUIREMENTS" {
		t.Errorf("Reviewed = %q, want %q", run.Reviewed, "FINAL REQUIREMENTS")
	}

	wantPath := filepath.Join(dir, OutputFile)
	if run.OutputPath != wantPath {
		t.Errorf("OutputPath = %q, want %q", run.OutputPath, wantPath)
	}
	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "FINAL REQUIREMENTS" {
		t.Errorf("written content = %q, want the reviewed text", data)
	}
}

func TestGenerate_OverwritesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	brief := filepath.Join(dir, "brief.md")
	writeFile(t, brief, "brief")
	writeFile(t, filepath.Join(dir, OutputFile), "stale")

	rec := &recorder{replies: []string{"draft", "fresh"}}
	if _, err := newTestPipeline(t, rec.client()).Generate(context.Background(), brief); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(dir, OutputFile))
	if string(data) != "fresh" {
		t.Errorf("output = %q, want %q", data, "fresh")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("directory has %d entries, want 2 (no temp files left behind)", len(entries))
	}
}

func TestGenerate_MissingBrief(t *testing.T) {
	rec := &recorder{}
	_, err := newTestPipeline(t, rec.client()).Generate(context.Background(),
		filepath.Join(t.TempDir(), "missing.md"))

	if !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("err = %v, want ErrResourceNotFound", err)
	}
	if len(rec.prompts) != 0 {
		t.Errorf("model called %d times, want 0", len(rec.prompts))
	}
}

func TestGenerate_BriefIsDirectory(t *testing.T) {
	rec := &recorder{}
	_, err := newTestPipeline(t, rec.client()).Generate(context.Background(), t.TempDir())

	if !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("err = %v, want ErrResourceNotFound", err)
	}
	if len(rec.prompts) != 0 {
		t.Errorf("model called %d times, want 0", len(rec.prompts))
	}
}

func TestGenerate_UnreadableBrief(t *testing.T) {
	dir := t.TempDir()
	brief := filepath.Join(dir, "brief.md")
	writeFile(t, brief, "brief")

	readFile := func(string) ([]byte, error) { return nil, os.ErrPermission }
	rec := &recorder{}
	_, err := newTestPipeline(t, rec.client(), WithReadFile(readFile)).Generate(context.Background(), brief)

	if !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("err = %v, want ErrResourceNotFound", err)
	}
	if len(rec.prompts) != 0 {
		t.Errorf("model called %d times, want 0", len(rec.prompts))
	}
}

func TestGenerate_KeepsOutputPermissions(t *testing.T) {
	dir := t.TempDir()
	brief := filepath.Join(dir, "brief.md")
	writeFile(t, brief, "brief")
	out := filepath.Join(dir, OutputFile)
	writeFile(t, out, "stale")
	if err := os.Chmod(out, 0o600); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	rec := &recorder{}
	if _, err := newTestPipeline(t, rec.client()).Generate(context.Background(), brief); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestGenerate_NewOutputPermissions(t *testing.T) {
	dir := t.TempDir()
	brief := filepath.Join(dir, "brief.md")
	writeFile(t, brief, "brief")

	rec := &recorder{}
	run, err := newTestPipeline(t, rec.client()).Generate(context.Background(), brief)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	info, err := os.Stat(run.OutputPath)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}
}

func TestGenerate_ModelFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	brief := filepath.Join(dir, "brief.md")
	writeFile(t, brief, "brief")

	boom := errors.New("rate limited")
	rec := &recorder{err: boom}
	_, err := newTestPipeline(t, rec.client()).Generate(context.Background(), brief)

	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want the model error", err)
	}
	if len(rec.prompts) != 1 {
		t.Errorf("model called %d times, want 1", len(rec.prompts))
	}
	if _, err := os.Stat(filepath.Join(dir, OutputFile)); !os.IsNotExist(err) {
		t.Error("requirements.md should not be written when a model call fails")
	}
}

func TestGenerate_CancelledBetweenSteps(t *testing.T) {
	dir := t.TempDir()
	brief := filepath.Join(dir, "brief.md")
	writeFile(t, brief, "brief")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	model := llm.ClientFunc{Fn: func(context.Context, string) (string, error) {
		calls++
		cancel()
		return "draft", nil
	}}

	_, err := newTestPipeline(t, model).Generate(ctx, brief)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("model called %d times, want 1", calls)
	}
	if _, err := os.Stat(filepath.Join(dir, OutputFile)); !os.IsNotExist(err) {
		t.Error("requirements.md should not be written after cancellation")
	}
}

// --- Assess ---

func TestAssess_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.md")
	writeFile(t, path, "1. The system shall do X.")

	rec := &recorder{replies: []string{"Score: 7/10"}}
	got, err := newTestPipeline(t, rec.client()).Assess(context.Background(), path)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if got != "Score: 7/10" {
		t.Errorf("Assess = %q, want %q", got, "Score: 7/10")
	}

	if len(rec.prompts) != 1 {
		t.Fatalf("model called %d times, want 1", len(rec.prompts))
	}
	if !strings.Contains(rec.prompts[0], catalogPrompt(t, catalog.RequirementsAssessment)) {
		t.Error("call should use the requirements_assessment prompt")
	}
	if !strings.Contains(rec.prompts[0], "1. The system shall do X.") {
		t.Error("call should carry the file content")
	}
	if strings.Contains(rec.prompts[0], "# From ") {
		t.Error("a single file should not get a filename marker")
	}
}

func TestAssess_DirectoryOrderAndMarkers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.md"), "Req B")
	writeFile(t, filepath.Join(dir, "a.md"), "Req A")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "nested", "c.md"), "Req C")

	rec := &recorder{}
	if _, err := newTestPipeline(t, rec.client()).Assess(context.Background(), dir); err != nil {
		t.Fatalf("Assess: %v", err)
	}

	if len(rec.prompts) != 1 {
		t.Fatalf("model called %d times, want 1", len(rec.prompts))
	}
	sent := rec.prompts[0]

	want := "\n\n# From a.md:\n\nReq A\n\n# From b.md:\n\nReq B"
	if !strings.Contains(sent, want) {
		t.Errorf("concatenation %q not found in prompt", want)
	}
	if strings.Contains(sent, "Req C") {
		t.Error("subdirectories should not be read")
	}
}

func TestAssess_DirectoryFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "real.md")
	writeFile(t, target, "Linked req")
	if err := os.Symlink(target, filepath.Join(dir, "link.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	rec := &recorder{}
	if _, err := newTestPipeline(t, rec.client()).Assess(context.Background(), dir); err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if !strings.Contains(rec.prompts[0], "# From link.md:\n\nLinked req") {
		t.Error("a symlink to a regular file should be read")
	}
}

func TestAssess_MissingPath(t *testing.T) {
	rec := &recorder{}
	_, err := newTestPipeline(t, rec.client()).Assess(context.Background(),
		filepath.Join(t.TempDir(), "nope"))

	if !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("err = %v, want ErrResourceNotFound", err)
	}
	if len(rec.prompts) != 0 {
		t.Errorf("model called %d times, want 0", len(rec.prompts))
	}
}

func TestAssess_EmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "blank file",
			setup: func(t *testing.T) string {
				p := filepath.Join(t.TempDir(), "blank.md")
				writeFile(t, p, "  \n\t ")
				return p
			},
		},
		{
			name: "empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			_, err := newTestPipeline(t, rec.client()).Assess(context.Background(), tt.setup(t))
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("err = %v, want ErrEmptyInput", err)
			}
			if len(rec.prompts) != 0 {
				t.Errorf("model called %d times, want 0", len(rec.prompts))
			}
		})
	}
}

func TestAssess_UnreadableFileSkippedWithWarning(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "Req A")
	writeFile(t, filepath.Join(dir, "b.md"), "Req B")
	writeFile(t, filepath.Join(dir, "c.md"), "Req C")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	readFile := func(path string) ([]byte, error) {
		if filepath.Base(path) == "b.md" {
			return nil, os.ErrPermission
		}
		return os.ReadFile(path)
	}

	rec := &recorder{}
	p := newTestPipeline(t, rec.client(), WithLogger(logger), WithReadFile(readFile))
	if _, err := p.Assess(context.Background(), dir); err != nil {
		t.Fatalf("Assess should succeed with the readable files: %v", err)
	}

	sent := rec.prompts[0]
	if !strings.Contains(sent, "Req A") || !strings.Contains(sent, "Req C") {
		t.Error("readable files should be assessed")
	}
	if strings.Contains(sent, "Req B") || strings.Contains(sent, "# From b.md") {
		t.Error("the unreadable file should be omitted entirely")
	}

	out := logs.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "b.md") {
		t.Errorf("expected a warning naming b.md, got logs:\n%s", out)
	}
}

func TestAssess_UnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.md")
	writeFile(t, path, "REQ")

	readFile := func(string) ([]byte, error) { return nil, os.ErrPermission }
	rec := &recorder{}
	_, err := newTestPipeline(t, rec.client(), WithReadFile(readFile)).Assess(context.Background(), path)

	if !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("err = %v, want ErrResourceNotFound", err)
	}
	if len(rec.prompts) != 0 {
		t.Errorf("model called %d times, want 0", len(rec.prompts))
	}
}

func TestAssess_AllFilesUnreadable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "Req A")

	readFile := func(string) ([]byte, error) { return nil, os.ErrPermission }
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	rec := &recorder{}
	_, err := newTestPipeline(t, rec.client(), WithLogger(logger), WithReadFile(readFile)).
		Assess(context.Background(), dir)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("err = %v, want ErrEmptyInput", err)
	}
}
