package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// TransportType defines the transport type for MCP connections
type TransportType string

const (
	TransportSSE            TransportType = "sse"
	TransportStreamableHTTP TransportType = "streamable-http"
)

// discoveryTimeout bounds the initialize + list sequence at startup.
// Discovery failure is fatal: the agent never runs with a partial registry.
const discoveryTimeout = 10 * time.Second

// invocationTimeout bounds a single tool call, resource read, or prompt get.
// Timeouts degrade to an error result for that invocation instead of
// blocking the whole round.
const invocationTimeout = 30 * time.Second

// Client is an MCP client for the capability provider. The connection is
// established once and held for the lifetime of the agent; individual
// invocations acquire scoped timeout contexts on it.
type Client struct {
	endpoint  string
	transport TransportType
	logger    *Logger
	client    client.MCPClient

	mu            sync.RWMutex
	toolCache     []mcp.Tool
	resourceCache []mcp.Resource
	promptCache   []mcp.Prompt
}

// NewClient creates a new provider client with the specified transport.
func NewClient(endpoint string, logger *Logger, transport TransportType) *Client {
	return &Client{
		endpoint:  endpoint,
		transport: transport,
		logger:    logger,
	}
}

// Connect establishes the held connection to the capability provider.
func (c *Client) Connect(ctx context.Context) error {
	if c.transport != TransportSSE && c.transport != TransportStreamableHTTP {
		return fmt.Errorf("unsupported transport type: %s", c.transport)
	}

	var mcpClient client.MCPClient
	switch c.transport {
	case TransportSSE:
		sseClient, err := client.NewSSEMCPClient(c.endpoint)
		if err != nil {
			return fmt.Errorf("failed to create SSE client: %w", err)
		}
		if err := sseClient.Start(ctx); err != nil {
			return fmt.Errorf("failed to start SSE client: %w", err)
		}
		mcpClient = sseClient

	case TransportStreamableHTTP:
		httpClient, err := client.NewStreamableHttpClient(c.endpoint)
		if err != nil {
			return fmt.Errorf("failed to create streamable-http client: %w", err)
		}
		if err := httpClient.Start(ctx); err != nil {
			return fmt.Errorf("failed to start streamable-http client: %w", err)
		}
		mcpClient = httpClient
	}

	c.client = mcpClient
	return nil
}

// Discover performs the protocol handshake and lists all tools, resources,
// and prompts under one bounded timeout. Any failure is returned to the
// caller, which treats it as fatal.
func (c *Client) Discover(ctx context.Context) ([]mcp.Tool, []mcp.Resource, []mcp.Prompt, error) {
	if c.client == nil {
		return nil, nil, nil, fmt.Errorf("client not connected")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, discoveryTimeout)
	defer cancel()

	if err := c.initialize(timeoutCtx); err != nil {
		return nil, nil, nil, fmt.Errorf("initialization failed: %w", err)
	}

	tools, err := c.listTools(timeoutCtx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("tool listing failed: %w", err)
	}
	resources, err := c.listResources(timeoutCtx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resource listing failed: %w", err)
	}
	prompts, err := c.listPrompts(timeoutCtx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("prompt listing failed: %w", err)
	}

	c.mu.Lock()
	c.toolCache = tools
	c.resourceCache = resources
	c.promptCache = prompts
	c.mu.Unlock()

	return tools, resources, prompts, nil
}

// initialize performs the MCP protocol handshake.
func (c *Client) initialize(ctx context.Context) error {
	req := mcp.InitializeRequest{
		Params: struct {
			ProtocolVersion string                 `json:"protocolVersion"`
			Capabilities    mcp.ClientCapabilities `json:"capabilities"`
			ClientInfo      mcp.Implementation     `json:"clientInfo"`
		}{
			ProtocolVersion: "2024-11-05",
			ClientInfo: mcp.Implementation{
				Name:    "maestro-agent",
				Version: "1.0.0",
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	}

	if c.logger != nil {
		c.logger.Request("initialize", req.Params)
	}

	result, err := c.client.Initialize(ctx, req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Initialize failed: %v", err)
		}
		return err
	}

	if c.logger != nil {
		c.logger.Response("initialize", result)
	}
	return nil
}

func (c *Client) listTools(ctx context.Context) ([]mcp.Tool, error) {
	req := mcp.ListToolsRequest{}
	if c.logger != nil {
		c.logger.Request("tools/list", req.Params)
	}

	result, err := c.client.ListTools(ctx, req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("ListTools failed: %v", err)
		}
		return nil, err
	}

	if c.logger != nil {
		c.logger.Response("tools/list", result)
	}
	return result.Tools, nil
}

func (c *Client) listResources(ctx context.Context) ([]mcp.Resource, error) {
	req := mcp.ListResourcesRequest{}
	if c.logger != nil {
		c.logger.Request("resources/list", req.Params)
	}

	result, err := c.client.ListResources(ctx, req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("ListResources failed: %v", err)
		}
		return nil, err
	}

	if c.logger != nil {
		c.logger.Response("resources/list", result)
	}
	return result.Resources, nil
}

func (c *Client) listPrompts(ctx context.Context) ([]mcp.Prompt, error) {
	req := mcp.ListPromptsRequest{}
	if c.logger != nil {
		c.logger.Request("prompts/list", req.Params)
	}

	result, err := c.client.ListPrompts(ctx, req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("ListPrompts failed: %v", err)
		}
		return nil, err
	}

	if c.logger != nil {
		c.logger.Response("prompts/list", result)
	}
	return result.Prompts, nil
}

// CallToolText executes a tool and returns the flattened text content.
// A tool-level error result (IsError) is returned as a Go error so the
// dispatcher can mark the invocation as failed; it never panics.
func (c *Client) CallToolText(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("client not connected")
	}

	req := mcp.CallToolRequest{
		Params: struct {
			Name      string    `json:"name"`
			Arguments any       `json:"arguments,omitempty"`
			Meta      *mcp.Meta `json:"_meta,omitempty"`
		}{
			Name:      name,
			Arguments: args,
		},
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, invocationTimeout)
	defer cancel()

	result, err := c.client.CallTool(timeoutCtx, req)
	if err != nil {
		return "", fmt.Errorf("tool call failed: %w", err)
	}

	text := flattenContent(result.Content)
	if result.IsError {
		return "", fmt.Errorf("tool error: %s", text)
	}
	return text, nil
}

// ReadResourceText reads a resource and returns its flattened text content.
func (c *Client) ReadResourceText(ctx context.Context, uri string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("client not connected")
	}

	req := mcp.ReadResourceRequest{
		Params: struct {
			URI       string         `json:"uri"`
			Arguments map[string]any `json:"arguments,omitempty"`
		}{
			URI: uri,
		},
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, invocationTimeout)
	defer cancel()

	result, err := c.client.ReadResource(timeoutCtx, req)
	if err != nil {
		return "", fmt.Errorf("resource read failed: %w", err)
	}

	var parts []string
	for _, content := range result.Contents {
		if textContent, ok := mcp.AsTextResourceContents(content); ok {
			parts = append(parts, textContent.Text)
		}
	}
	return strings.Join(parts, ""), nil
}

// GetPromptText retrieves a prompt with the given arguments and returns the
// expanded template text across all messages.
func (c *Client) GetPromptText(ctx context.Context, name string, args map[string]string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("client not connected")
	}

	req := mcp.GetPromptRequest{
		Params: struct {
			Name      string            `json:"name"`
			Arguments map[string]string `json:"arguments,omitempty"`
		}{
			Name:      name,
			Arguments: args,
		},
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, invocationTimeout)
	defer cancel()

	result, err := c.client.GetPrompt(timeoutCtx, req)
	if err != nil {
		return "", fmt.Errorf("prompt get failed: %w", err)
	}

	var parts []string
	for _, msg := range result.Messages {
		if textContent, ok := msg.Content.(mcp.TextContent); ok {
			parts = append(parts, textContent.Text)
		}
	}
	return strings.Join(parts, ""), nil
}

// flattenContent concatenates all text content blocks of a tool result.
func flattenContent(contents []mcp.Content) string {
	var parts []string
	for _, content := range contents {
		if textContent, ok := mcp.AsTextContent(content); ok {
			parts = append(parts, textContent.Text)
		}
	}
	return strings.Join(parts, "")
}

// GetToolCache returns the discovered tools.
func (c *Client) GetToolCache() []mcp.Tool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.toolCache
}

// GetResourceCache returns the discovered resources.
func (c *Client) GetResourceCache() []mcp.Resource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resourceCache
}

// GetPromptCache returns the discovered prompts.
func (c *Client) GetPromptCache() []mcp.Prompt {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.promptCache
}

// Close closes the held connection.
func (c *Client) Close() error {
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
	return nil
}
