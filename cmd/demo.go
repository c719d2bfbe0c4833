package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maestro/internal/agent"

	"github.com/spf13/cobra"
)

var demoOpts connectionOptions

// demoQueries exercises each capability category plus the continuation
// heuristic.
var demoQueries = []string{
	"What's the weather like in Paris?",
	"Calculate 144 + 25",
	"Research Tesla and create a comprehensive report",
	"Search for information about Apple Inc and analyze the company",
}

// demoCmd runs a fixed set of sample queries through the orchestration loop.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run sample queries through the orchestration agent",
	Long: `Runs a fixed set of sample queries through the orchestration loop to
demonstrate capability selection: weather lookup, arithmetic, and the
two-phase gather-then-report workflow.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	addConnectionFlags(demoCmd, &demoOpts)
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := agent.NewLogger(demoOpts.verbose, !demoOpts.noColor, demoOpts.jsonRPC)

	client, orch, err := setupAgent(ctx, demoOpts, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	for i, query := range demoQueries {
		logger.OutputLine("")
		logger.Info("Demo query %d/%d: %s", i+1, len(demoQueries), query)

		answer, err := orch.Chat(ctx, query)
		if err != nil {
			logger.Error("Request failed: %v", err)
			continue
		}
		fmt.Println(answer)

		if i < len(demoQueries)-1 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(2 * time.Second):
			}
		}
	}

	logger.Success("Demo complete")
	return nil
}
