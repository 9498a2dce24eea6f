// Package render provides output renderers for normalized endpoints.
// This file implements the Markdown renderer, which produces the
// human-readable endpoint report; the PDF renderer builds on its output.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/specpipe/core"
	"github.com/gaurav-prasanna/specpipe/core/model"
)

// MarkdownRenderer writes the canonical endpoint list as a Markdown
// report: one section per endpoint with its parameters and schemas.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render builds the Markdown report.
func (r *MarkdownRenderer) Render(endpoints []model.Endpoint, meta core.SourceMeta) ([]byte, error) {
	var b strings.Builder

	title := meta.Title
	if title == "" {
		title = "API Endpoints"
	}
	if meta.Version != "" {
		fmt.Fprintf(&b, "# %s (%s)\n\n", title, meta.Version)
	} else {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	fmt.Fprintf(&b, "Source: %s (%s)\n\n", meta.Source, meta.Format)
	fmt.Fprintf(&b, "%d endpoints\n", len(endpoints))

	for _, ep := range endpoints {
		fmt.Fprintf(&b, "\n## %s\n\n", ep.Name)
		fmt.Fprintf(&b, "`%s %s`\n", ep.Method, ep.Path)
		if ep.Deprecated {
			b.WriteString("\nDeprecated.\n")
		}
		if ep.Summary != "" {
			fmt.Fprintf(&b, "\n%s\n", ep.Summary)
		}
		if ep.Description != "" && ep.Description != ep.Summary {
			fmt.Fprintf(&b, "\n%s\n", ep.Description)
		}
		if len(ep.Tags) > 0 {
			fmt.Fprintf(&b, "\nTags: %s\n", strings.Join(ep.Tags, ", "))
		}

		if len(ep.Parameters) > 0 {
			b.WriteString("\nParameters:\n\n")
			for _, p := range ep.Parameters {
				line := fmt.Sprintf("- `%s` (%s, %s", p.Name, p.Location, p.Type)
				if p.Required {
					line += ", required"
				}
				line += ")"
				if p.Description != "" {
					line += ": " + p.Description
				}
				b.WriteString(line + "\n")
			}
		}

		if err := writeSchema(&b, "Request body", ep.BodySchema); err != nil {
			return nil, err
		}
		if err := writeSchema(&b, "Response", ep.ResponseSchema); err != nil {
			return nil, err
		}
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func writeSchema(b *strings.Builder, label string, schema *model.Schema) error {
	if schema == nil {
		return nil
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s schema: %w", strings.ToLower(label), err)
	}
	fmt.Fprintf(b, "\n%s:\n\n```json\n%s\n```\n", label, data)
	return nil
}
