package cmd

import (
	"context"
	"fmt"
	"os"

	"maestro/internal/agent"
	"maestro/internal/config"
	"maestro/internal/llm"
	"maestro/internal/orchestrator"
	"maestro/pkg/logging"

	"github.com/spf13/cobra"
)

// connectionOptions holds the flags shared by every command that talks to
// the capability provider.
type connectionOptions struct {
	configPath string
	endpoint   string
	transport  string
	verbose    bool
	noColor    bool
	jsonRPC    bool
}

// addConnectionFlags registers the shared provider connection flags.
func addConnectionFlags(cmd *cobra.Command, opts *connectionOptions) {
	cmd.Flags().StringVar(&opts.configPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Configuration directory")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "Provider MCP endpoint URL (default: from config)")
	cmd.Flags().StringVar(&opts.transport, "transport", "", "Transport to use (streamable-http, sse; default: from config)")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&opts.jsonRPC, "json-rpc", false, "Enable full JSON-RPC message logging")
}

// setupAgent loads configuration, connects to the provider, runs discovery,
// and builds the orchestrator. Discovery or configuration failures are
// returned as errors and treated as fatal by the callers: the agent never
// starts with a partial capability registry.
func setupAgent(ctx context.Context, opts connectionOptions, logger *agent.Logger) (*agent.Client, *orchestrator.Orchestrator, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.endpoint != "" {
		cfg.Provider.Endpoint = opts.endpoint
	}
	if opts.transport != "" {
		cfg.Provider.Transport = opts.transport
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if opts.verbose {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, os.Stderr)

	client := agent.NewClient(cfg.Provider.Endpoint, logger, agent.TransportType(cfg.Provider.Transport))
	if err := client.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to provider at %s: %w", cfg.Provider.Endpoint, err)
	}

	tools, resources, prompts, err := client.Discover(ctx)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("capability discovery failed: %w", err)
	}

	registry, err := orchestrator.NewRegistry(tools, resources, prompts)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("capability registry rejected discovery result: %w", err)
	}

	model := llm.NewOpenAIClient(cfg.Model.APIKey, cfg.Model.BaseURL, cfg.Model.Name)
	orch, err := orchestrator.New(model, client, registry, orchestrator.Options{
		Temperature: cfg.Model.Temperature,
		MaxTokens:   cfg.Model.MaxTokens,
	})
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	return client, orch, nil
}
