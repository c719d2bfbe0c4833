package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"maestro/pkg/logging"
)

// Provider is the capability provider contract the dispatcher executes
// against. Implementations signal ordinary operational failures through the
// returned error; they never panic.
type Provider interface {
	CallToolText(ctx context.Context, name string, args map[string]interface{}) (string, error)
	ReadResourceText(ctx context.Context, uri string) (string, error)
	GetPromptText(ctx context.Context, name string, args map[string]string) (string, error)
}

// InvocationResult is the outcome of one model-requested call. Every
// requested call produces exactly one result; provider faults are absorbed
// into ResultText with Succeeded=false and never propagate as a crash.
type InvocationResult struct {
	CallID     string
	ResultText string
	Succeeded  bool
}

// Dispatcher routes qualified function names to provider operations using
// the registry's capability table.
type Dispatcher struct {
	provider Provider
	registry *Registry
}

// NewDispatcher creates a dispatcher over the given provider and registry.
func NewDispatcher(provider Provider, registry *Registry) *Dispatcher {
	return &Dispatcher{provider: provider, registry: registry}
}

// Dispatch executes one invocation. The qualified name's prefix selects the
// provider operation; the capability table resolves the concrete target.
func (d *Dispatcher) Dispatch(ctx context.Context, callID, qualifiedName string, args map[string]any) InvocationResult {
	route, ok := d.registry.RouteFor(qualifiedName)
	if !ok {
		// The table was keyed on normalized names at discovery time, so a
		// miss here means the model invented the function.
		return failure(callID, fmt.Sprintf("Unknown function: %s", qualifiedName))
	}

	var text string
	var err error
	switch route.Kind {
	case KindTool:
		logging.Debug("Dispatcher", "Calling tool %q with %d args", route.Target, len(args))
		text, err = d.provider.CallToolText(ctx, route.Target, args)

	case KindResource:
		logging.Debug("Dispatcher", "Reading resource %q", route.Target)
		text, err = d.provider.ReadResourceText(ctx, route.Target)

	case KindPrompt:
		logging.Debug("Dispatcher", "Getting prompt %q with %d args", route.Target, len(args))
		text, err = d.provider.GetPromptText(ctx, route.Target, stringifyArgs(args))

	default:
		return failure(callID, fmt.Sprintf("Unknown capability kind for %s", qualifiedName))
	}

	if err != nil {
		logging.Warn("Dispatcher", "Invocation %s failed: %v", qualifiedName, err)
		return failure(callID, fmt.Sprintf("Error executing %s: %v", qualifiedName, err))
	}

	return InvocationResult{CallID: callID, ResultText: text, Succeeded: true}
}

func failure(callID, message string) InvocationResult {
	return InvocationResult{CallID: callID, ResultText: message, Succeeded: false}
}

// stringifyArgs converts a generic argument mapping to the string-valued
// form the prompt operation expects.
func stringifyArgs(args map[string]any) map[string]string {
	if len(args) == 0 {
		return nil
	}
	result := make(map[string]string, len(args))
	for key, value := range args {
		if s, ok := value.(string); ok {
			result[key] = s
			continue
		}
		result[key] = strings.TrimSpace(fmt.Sprintf("%v", value))
	}
	return result
}
