package orchestrator

import (
	"maestro/internal/llm"

	"github.com/mark3labs/mcp-go/mcp"
)

// SynthesizeSchemas converts every registered capability descriptor into a
// model-callable function schema. Exactly one schema is produced per
// descriptor; the qualified name is reversible through the registry's
// routing table.
func SynthesizeSchemas(registry *Registry) []llm.Tool {
	schemas := make([]llm.Tool, 0, registry.Size())

	for _, tool := range registry.Tools() {
		schemas = append(schemas, llm.Tool{
			Type: "function",
			Function: llm.FunctionDef{
				Name:        toolPrefix + tool.Name,
				Description: "Tool: " + tool.Description,
				Parameters:  toolParameters(tool),
			},
		})
	}

	for _, resource := range registry.Resources() {
		schemas = append(schemas, llm.Tool{
			Type: "function",
			Function: llm.FunctionDef{
				Name:        resourcePrefix + NormalizeResourceName(resource.Name),
				Description: "Resource: " + resource.Description,
				Parameters: map[string]any{
					"type":       "object",
					"properties": map[string]any{},
					"required":   []string{},
				},
			},
		})
	}

	for _, prompt := range registry.Prompts() {
		schemas = append(schemas, llm.Tool{
			Type: "function",
			Function: llm.FunctionDef{
				Name:        promptPrefix + prompt.Name,
				Description: "Prompt: " + prompt.Description,
				Parameters:  promptParameters(prompt),
			},
		})
	}

	return schemas
}

// toolParameters uses the tool's declared input schema verbatim when it has
// at least one property, and the generic fallback schema otherwise.
func toolParameters(tool mcp.Tool) map[string]any {
	if len(tool.InputSchema.Properties) > 0 {
		params := map[string]any{
			"type":       "object",
			"properties": tool.InputSchema.Properties,
		}
		if len(tool.InputSchema.Required) > 0 {
			params["required"] = tool.InputSchema.Required
		}
		return params
	}
	return genericToolParameters()
}

// genericToolParameters is the fallback schema for tools that declare no
// structured parameters. It is deliberately over-broad: a fixed set of
// optional string fields from which the model picks whichever subset is
// relevant. This trades schema precision for recall across unknown tools;
// it is a known tradeoff, not a bug.
func genericToolParameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Primary input/query parameter",
			},
			"search_type": map[string]any{
				"type":        "string",
				"description": "Type or category for the operation",
			},
			"location": map[string]any{
				"type":        "string",
				"description": "Location parameter (if applicable)",
			},
			"expression": map[string]any{
				"type":        "string",
				"description": "Expression or calculation (if applicable)",
			},
			"company_name": map[string]any{
				"type":        "string",
				"description": "Company name (if applicable)",
			},
			"industry": map[string]any{
				"type":        "string",
				"description": "Industry sector (if applicable)",
			},
		},
		"required": []string{},
	}
}

// promptParameters builds one string property per declared prompt argument,
// propagating the required flag verbatim.
func promptParameters(prompt mcp.Prompt) map[string]any {
	properties := map[string]any{}
	required := []string{}

	for _, arg := range prompt.Arguments {
		properties[arg.Name] = map[string]any{
			"type":        "string",
			"description": arg.Description,
		}
		if arg.Required {
			required = append(required, arg.Name)
		}
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
