package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"maestro/internal/agent"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var chatOpts connectionOptions

// chatCmd answers a single request and exits.
var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Answer one request through the orchestration agent",
	Long: `Connects to the capability provider, discovers its capabilities, and
answers a single natural-language request by letting the model select and
invoke the appropriate capabilities.

Example:
  maestro chat "What's the weather in Tokyo?"
  maestro chat "Research Tesla and create a comprehensive report"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	addConnectionFlags(chatCmd, &chatOpts)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := agent.NewLogger(chatOpts.verbose, !chatOpts.noColor, chatOpts.jsonRPC)

	client, orch, err := setupAgent(ctx, chatOpts, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	message := strings.Join(args, " ")

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Orchestrating..."
	s.Start()

	answer, err := orch.Chat(ctx, message)
	s.Stop()

	if err != nil {
		return fmt.Errorf("orchestration failed: %w", err)
	}

	fmt.Println(answer)
	return nil
}
