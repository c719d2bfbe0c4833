package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"maestro/internal/agent"

	"github.com/spf13/cobra"
)

var agentOpts connectionOptions

// agentCmd connects, prints the discovered capability set, and starts the
// interactive REPL.
var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Interactive orchestration session against the capability provider",
	Long: `The agent command connects to the MCP capability provider, discovers
its tools, resources, and prompts, and starts an interactive session.

Free text typed at the prompt is answered through the orchestration loop:
the model decides which capabilities to invoke, the agent executes them,
and the model composes the final answer.

REPL commands:
  capabilities, caps   List discovered tools, resources, and prompts
  help                 Show available commands
  exit, quit, bye      Leave the session`,
	RunE: runAgentCmd,
}

func init() {
	rootCmd.AddCommand(agentCmd)
	addConnectionFlags(agentCmd, &agentOpts)
}

func runAgentCmd(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := agent.NewLogger(agentOpts.verbose, !agentOpts.noColor, agentOpts.jsonRPC)

	client, orch, err := setupAgent(ctx, agentOpts, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	formatters := agent.NewFormatters()
	logger.Success("%s", formatters.FormatDiscoverySummary(client.GetToolCache(), client.GetResourceCache(), client.GetPromptCache()))
	logger.OutputLine("%s", formatters.FormatToolsTable(client.GetToolCache()))
	logger.OutputLine("%s", formatters.FormatResourcesTable(client.GetResourceCache()))
	logger.OutputLine("%s", formatters.FormatPromptsTable(client.GetPromptCache()))

	repl := agent.NewREPL(orch, client, logger)
	return repl.Run(ctx)
}
