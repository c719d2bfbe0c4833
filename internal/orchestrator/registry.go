package orchestrator

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// CapabilityKind identifies which provider operation a qualified name
// routes to.
type CapabilityKind string

const (
	KindTool     CapabilityKind = "tool"
	KindResource CapabilityKind = "resource"
	KindPrompt   CapabilityKind = "prompt"
)

// Qualified name prefixes. The prefix plus the identifying name is the sole
// key used for routing, so the combination must be unique within a session.
const (
	toolPrefix     = "tool_"
	resourcePrefix = "resource_"
	promptPrefix   = "prompt_"
)

// Route is one entry of the capability table: the kind and the concrete
// target the dispatcher invokes (tool name, resource URI, or prompt name).
type Route struct {
	Kind   CapabilityKind
	Target string
}

// Registry holds the discovered capability set for a session. It is
// populated once at startup and read-only afterward, so it is safe to share
// across concurrently executing invocations.
type Registry struct {
	tools     []mcp.Tool
	resources []mcp.Resource
	prompts   []mcp.Prompt
	routes    map[string]Route
}

// NewRegistry builds the registry and its routing table from the discovery
// result. Duplicate natural names within a kind (including resource names
// that collide after normalization) are rejected: a session with ambiguous
// routing is worse than no session.
func NewRegistry(tools []mcp.Tool, resources []mcp.Resource, prompts []mcp.Prompt) (*Registry, error) {
	r := &Registry{
		tools:     tools,
		resources: resources,
		prompts:   prompts,
		routes:    make(map[string]Route, len(tools)+len(resources)+len(prompts)),
	}

	for _, tool := range tools {
		if err := r.addRoute(toolPrefix+tool.Name, KindTool, tool.Name); err != nil {
			return nil, err
		}
	}
	for _, resource := range resources {
		qualified := resourcePrefix + NormalizeResourceName(resource.Name)
		if err := r.addRoute(qualified, KindResource, resource.URI); err != nil {
			return nil, err
		}
	}
	for _, prompt := range prompts {
		if err := r.addRoute(promptPrefix+prompt.Name, KindPrompt, prompt.Name); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Registry) addRoute(qualifiedName string, kind CapabilityKind, target string) error {
	if existing, ok := r.routes[qualifiedName]; ok {
		return fmt.Errorf("duplicate capability name %q (%s collides with %s)", qualifiedName, kind, existing.Kind)
	}
	r.routes[qualifiedName] = Route{Kind: kind, Target: target}
	return nil
}

// NormalizeResourceName lower-cases a resource display name and replaces
// spaces with underscores so it can appear in a function name. The mapping
// is lossy: the display name cannot be recovered from the normalized form,
// which is why routing goes through the table built at discovery time
// rather than attempting to invert it.
func NormalizeResourceName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// RouteFor resolves a qualified function name to its capability table entry.
func (r *Registry) RouteFor(qualifiedName string) (Route, bool) {
	route, ok := r.routes[qualifiedName]
	return route, ok
}

// Tools returns the discovered tool descriptors.
func (r *Registry) Tools() []mcp.Tool { return r.tools }

// Resources returns the discovered resource descriptors.
func (r *Registry) Resources() []mcp.Resource { return r.resources }

// Prompts returns the discovered prompt descriptors.
func (r *Registry) Prompts() []mcp.Prompt { return r.prompts }

// ToolNames returns the natural names of all discovered tools.
func (r *Registry) ToolNames() []string {
	names := make([]string, 0, len(r.tools))
	for _, tool := range r.tools {
		names = append(names, tool.Name)
	}
	return names
}

// PromptNames returns the natural names of all discovered prompts.
func (r *Registry) PromptNames() []string {
	names := make([]string, 0, len(r.prompts))
	for _, prompt := range r.prompts {
		names = append(names, prompt.Name)
	}
	return names
}

// Size returns the total number of registered capabilities.
func (r *Registry) Size() int {
	return len(r.routes)
}
