package agent

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mark3labs/mcp-go/mcp"
)

// Formatters provides consistent console formatting for discovered
// capabilities.
type Formatters struct{}

// NewFormatters creates a new formatters instance.
func NewFormatters() *Formatters {
	return &Formatters{}
}

func (f *Formatters) newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

// FormatToolsTable renders the tool list as a table.
func (f *Formatters) FormatToolsTable(tools []mcp.Tool) string {
	if len(tools) == 0 {
		return "No tools available."
	}

	t := f.newTable()
	t.AppendHeader(table.Row{"#", "TOOL", "DESCRIPTION"})
	for i, tool := range tools {
		t.AppendRow(table.Row{i + 1, tool.Name, truncate(tool.Description, 80)})
	}
	return t.Render()
}

// FormatResourcesTable renders the resource list as a table.
func (f *Formatters) FormatResourcesTable(resources []mcp.Resource) string {
	if len(resources) == 0 {
		return "No resources available."
	}

	t := f.newTable()
	t.AppendHeader(table.Row{"#", "RESOURCE", "URI", "DESCRIPTION"})
	for i, resource := range resources {
		t.AppendRow(table.Row{i + 1, resource.Name, resource.URI, truncate(resource.Description, 60)})
	}
	return t.Render()
}

// FormatPromptsTable renders the prompt list as a table. Required arguments
// are marked with an asterisk.
func (f *Formatters) FormatPromptsTable(prompts []mcp.Prompt) string {
	if len(prompts) == 0 {
		return "No prompts available."
	}

	t := f.newTable()
	t.AppendHeader(table.Row{"#", "PROMPT", "ARGUMENTS", "DESCRIPTION"})
	for i, prompt := range prompts {
		var args []string
		for _, arg := range prompt.Arguments {
			name := arg.Name
			if arg.Required {
				name += "*"
			}
			args = append(args, name)
		}
		t.AppendRow(table.Row{i + 1, prompt.Name, strings.Join(args, ", "), truncate(prompt.Description, 60)})
	}
	return t.Render()
}

// FormatDiscoverySummary renders the one-line discovery summary.
func (f *Formatters) FormatDiscoverySummary(tools []mcp.Tool, resources []mcp.Resource, prompts []mcp.Prompt) string {
	return fmt.Sprintf("Discovered %d tools, %d resources, %d prompts", len(tools), len(resources), len(prompts))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
