package config

import "errors"

// ErrMissingAPIKey indicates that no model API key was found in the
// configuration file or the environment. This is fatal at startup: the agent
// cannot orchestrate anything without a model endpoint credential.
var ErrMissingAPIKey = errors.New("model API key not configured (set OPENAI_API_KEY or model.apiKey in config.yaml)")

// Config is the top-level configuration structure for maestro.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Model    ModelConfig    `yaml:"model"`
	LogLevel string         `yaml:"logLevel,omitempty"`
}

// ProviderConfig defines how to reach the MCP capability provider.
type ProviderConfig struct {
	Endpoint  string `yaml:"endpoint,omitempty"`  // Provider MCP endpoint (default: http://localhost:8090/mcp)
	Transport string `yaml:"transport,omitempty"` // Transport to use (default: streamable-http)
}

// ModelConfig defines the chat-completion model endpoint used for orchestration.
type ModelConfig struct {
	BaseURL     string  `yaml:"baseURL,omitempty"`     // OpenAI-compatible base URL (default: https://api.openai.com/v1)
	APIKey      string  `yaml:"apiKey,omitempty"`      // API key; OPENAI_API_KEY takes precedence
	Name        string  `yaml:"name,omitempty"`        // Model name (default: gpt-4o-mini)
	Temperature float64 `yaml:"temperature,omitempty"` // Sampling temperature (default: 0.1)
	MaxTokens   int     `yaml:"maxTokens,omitempty"`   // Output token cap per round (default: 4000)
}

const (
	// MCPTransportStreamableHTTP is the streamable HTTP transport.
	MCPTransportStreamableHTTP = "streamable-http"
	// MCPTransportSSE is the Server-Sent Events transport.
	MCPTransportSSE = "sse"
)

// GetDefaultConfig returns the default configuration for maestro.
func GetDefaultConfig() Config {
	return Config{
		Provider: ProviderConfig{
			Endpoint:  "http://localhost:8090/mcp",
			Transport: MCPTransportStreamableHTTP,
		},
		Model: ModelConfig{
			BaseURL:     "https://api.openai.com/v1",
			Name:        "gpt-4o-mini",
			Temperature: 0.1,
			MaxTokens:   4000,
		},
		LogLevel: "info",
	}
}

// Validate checks that the configuration is complete enough to start the agent.
func (c Config) Validate() error {
	if c.Model.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
