package router

import (
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/insight-mcp/insight/internal/phase"
)

// Definitions returns the tools to advertise over MCP. Tool names must be
// unique there, so descriptors sharing a name are merged: prompt_name enums
// and context properties are unioned and descriptions are joined. Order is
// that of first appearance.
func (r *Router) Definitions() []mcp.Tool {
	var (
		order  []string
		merged = map[string]mcp.Tool{}
	)
	for _, t := range r.Tools() {
		existing, ok := merged[t.Name]
		if !ok {
			order = append(order, t.Name)
			merged[t.Name] = t
			continue
		}
		merged[t.Name] = mergeTools(existing, t)
	}

	out := make([]mcp.Tool, 0, len(order))
	for _, name := range order {
		out = append(out, merged[name])
	}
	return out
}

// mergeTools combines two descriptors of the same tool into a new one.
func mergeTools(a, b mcp.Tool) mcp.Tool {
	out := a
	out.Description = joinDescriptions(a.Description, b.Description)

	props := make(map[string]any, len(a.InputSchema.Properties))
	for k, v := range a.InputSchema.Properties {
		props[k] = v
	}
	for k, v := range b.InputSchema.Properties {
		existing, ok := props[k]
		if !ok {
			props[k] = v
			continue
		}
		props[k] = mergeProperty(k, existing, v)
	}
	out.InputSchema.Properties = props
	out.InputSchema.Required = unionStrings(a.InputSchema.Required, b.InputSchema.Required)
	return out
}

func mergeProperty(name string, a, b any) any {
	am, aok := a.(map[string]any)
	bm, bok := b.(map[string]any)
	if !aok || !bok {
		return a
	}

	out := make(map[string]any, len(am))
	for k, v := range am {
		out[k] = v
	}

	switch name {
	case phase.ArgPromptName:
		out["enum"] = unionStrings(enumValues(am["enum"]), enumValues(bm["enum"]))
		out["description"] = "Name of the prompt to get"
	case phase.ArgContext:
		sub := map[string]any{}
		for _, m := range []map[string]any{am, bm} {
			if p, ok := m["properties"].(map[string]any); ok {
				for k, v := range p {
					if _, seen := sub[k]; !seen {
						sub[k] = v
					}
				}
			}
		}
		out["properties"] = sub
	}
	return out
}

func enumValues(v any) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, s := range vals {
			if str, ok := s.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// unionStrings returns the sorted union of a and b.
func unionStrings(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		set[s] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func joinDescriptions(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "" || strings.Contains(a, b):
		return a
	}
	return strings.TrimSuffix(a, ".") + ". " + b
}
