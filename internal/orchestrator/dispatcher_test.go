package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider records invocations and returns scripted results.
type fakeProvider struct {
	mu          sync.Mutex
	toolCalls   []recordedCall
	resourceURI []string
	promptCalls []recordedPromptCall

	toolResult   string
	toolErr      error
	resourceText string
	promptText   string
	promptErr    error
}

type recordedCall struct {
	name string
	args map[string]interface{}
}

type recordedPromptCall struct {
	name string
	args map[string]string
}

func (p *fakeProvider) CallToolText(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.toolCalls = append(p.toolCalls, recordedCall{name: name, args: args})
	return p.toolResult, p.toolErr
}

func (p *fakeProvider) ReadResourceText(ctx context.Context, uri string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resourceURI = append(p.resourceURI, uri)
	return p.resourceText, nil
}

func (p *fakeProvider) GetPromptText(ctx context.Context, name string, args map[string]string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.promptCalls = append(p.promptCalls, recordedPromptCall{name: name, args: args})
	return p.promptText, p.promptErr
}

func newTestDispatcher(t *testing.T, provider *fakeProvider) *Dispatcher {
	t.Helper()
	tools, resources, prompts := testCapabilities()
	registry, err := NewRegistry(tools, resources, prompts)
	require.NoError(t, err)
	return NewDispatcher(provider, registry)
}

func TestDispatchTool(t *testing.T) {
	provider := &fakeProvider{toolResult: "42"}
	d := newTestDispatcher(t, provider)

	result := d.Dispatch(context.Background(), "call-1", "tool_calculator", map[string]any{"expression": "6*7"})

	assert.True(t, result.Succeeded)
	assert.Equal(t, "call-1", result.CallID)
	assert.Equal(t, "42", result.ResultText)
	require.Len(t, provider.toolCalls, 1)
	assert.Equal(t, "calculator", provider.toolCalls[0].name)
	assert.Equal(t, map[string]interface{}{"expression": "6*7"}, provider.toolCalls[0].args)
}

func TestDispatchResource(t *testing.T) {
	provider := &fakeProvider{resourceText: "profile contents"}
	d := newTestDispatcher(t, provider)

	result := d.Dispatch(context.Background(), "call-2", "resource_company_profile", nil)

	assert.True(t, result.Succeeded)
	assert.Equal(t, "profile contents", result.ResultText)
	require.Len(t, provider.resourceURI, 1)
	assert.Equal(t, "docs://company/profile", provider.resourceURI[0])
}

func TestDispatchPrompt(t *testing.T) {
	provider := &fakeProvider{promptText: "rendered prompt"}
	d := newTestDispatcher(t, provider)

	result := d.Dispatch(context.Background(), "call-3", "prompt_analysis_report", map[string]any{
		"topic": "Tesla",
		"depth": 3,
	})

	assert.True(t, result.Succeeded)
	assert.Equal(t, "rendered prompt", result.ResultText)
	require.Len(t, provider.promptCalls, 1)
	assert.Equal(t, "analysis_report", provider.promptCalls[0].name)
	// Non-string argument values are stringified for the prompt operation.
	assert.Equal(t, map[string]string{"topic": "Tesla", "depth": "3"}, provider.promptCalls[0].args)
}

func TestDispatchUnknownFunction(t *testing.T) {
	provider := &fakeProvider{}
	d := newTestDispatcher(t, provider)

	result := d.Dispatch(context.Background(), "call-4", "tool_invented", nil)

	assert.False(t, result.Succeeded)
	assert.Equal(t, "Unknown function: tool_invented", result.ResultText)
	assert.Empty(t, provider.toolCalls)
}

func TestDispatchAbsorbsProviderFailure(t *testing.T) {
	provider := &fakeProvider{toolErr: errors.New("division by zero")}
	d := newTestDispatcher(t, provider)

	result := d.Dispatch(context.Background(), "call-5", "tool_calculator", map[string]any{"expression": "1/0"})

	assert.False(t, result.Succeeded)
	assert.Equal(t, "call-5", result.CallID)
	assert.Contains(t, result.ResultText, "Error executing tool_calculator")
	assert.Contains(t, result.ResultText, "division by zero")
}
