package cmd

import (
	"errors"
	"os"

	"maestro/internal/config"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error.
	ExitCodeError = 1
	// ExitCodeConfigError indicates incomplete configuration, such as a
	// missing model API key.
	ExitCodeConfigError = 2
)

// rootCmd represents the base command for the maestro application.
var rootCmd = &cobra.Command{
	Use:   "maestro",
	Short: "Model-orchestrated MCP capability agent",
	Long: `maestro connects to an MCP capability provider, discovers its tools,
resources, and prompts, and lets a chat-completion model decide which of
them to invoke to satisfy a natural-language request.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. Called from main with
// the build-time version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "maestro version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps error types to semantic exit codes for scripting.
func getExitCode(err error) int {
	if errors.Is(err, config.ErrMissingAPIKey) {
		return ExitCodeConfigError
	}
	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
