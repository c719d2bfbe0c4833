package agent

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"maestro/internal/orchestrator"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
)

// chatTimeout bounds one orchestrated request in the REPL. Generous enough
// for multi-round requests against slow providers while still guarding
// against hung calls.
const chatTimeout = 5 * time.Minute

// REPL is an interactive loop over the orchestrator: free text is answered
// through the model, a few commands inspect the discovered capability set.
type REPL struct {
	orchestrator *orchestrator.Orchestrator
	client       *Client
	logger       *Logger
	formatters   *Formatters
	useSpinner   bool
}

// NewREPL creates a REPL over a connected client and its orchestrator.
func NewREPL(orch *orchestrator.Orchestrator, client *Client, logger *Logger) *REPL {
	return &REPL{
		orchestrator: orch,
		client:       client,
		logger:       logger,
		formatters:   NewFormatters(),
		useSpinner:   true,
	}
}

// Run processes input until EOF, interrupt, or an exit command.
func (r *REPL) Run(ctx context.Context) error {
	historyFile := filepath.Join(os.TempDir(), ".maestro_agent_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "maestro> ",
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()

	r.logger.Info("REPL started. Type 'help' for available commands, 'exit' to quit.")
	fmt.Println()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("REPL shutting down...")
			return nil
		default:
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				continue
			}
		} else if err == io.EOF {
			r.logger.Info("Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit", "bye":
			r.logger.Info("Goodbye!")
			return nil
		case "help":
			r.printHelp()
		case "capabilities", "caps":
			r.printCapabilities()
		default:
			r.chat(ctx, input)
		}
	}
}

func (r *REPL) printHelp() {
	r.logger.OutputLine("Commands:")
	r.logger.OutputLine("  capabilities, caps   List discovered tools, resources, and prompts")
	r.logger.OutputLine("  help                 Show this help")
	r.logger.OutputLine("  exit, quit, bye      Leave the REPL")
	r.logger.OutputLine("")
	r.logger.OutputLine("Anything else is sent to the orchestration agent.")
}

func (r *REPL) printCapabilities() {
	r.logger.OutputLine("%s", r.formatters.FormatToolsTable(r.client.GetToolCache()))
	r.logger.OutputLine("%s", r.formatters.FormatResourcesTable(r.client.GetResourceCache()))
	r.logger.OutputLine("%s", r.formatters.FormatPromptsTable(r.client.GetPromptCache()))
}

func (r *REPL) chat(ctx context.Context, input string) {
	chatCtx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	var s *spinner.Spinner
	if r.useSpinner {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Orchestrating..."
		s.Start()
	}

	answer, err := r.orchestrator.Chat(chatCtx, input)

	if s != nil {
		s.Stop()
	}

	if err != nil {
		r.logger.Error("Request failed: %v", err)
		return
	}

	r.logger.OutputLine("")
	r.logger.OutputLine("%s", answer)
	r.logger.OutputLine("")
}
