package orchestrator

import (
	"context"
	"encoding/json"
	"strings"

	"maestro/internal/llm"
	"maestro/pkg/logging"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// comprehensivenessKeywords trigger the one continuation round when the
// user asked for structured output but the model only gathered data.
var comprehensivenessKeywords = []string{
	"report", "analysis", "comprehensive", "detailed", "analyze", "study",
}

// continuationPrompt is the synthetic user turn appended before the
// continuation round.
const continuationPrompt = "Based on the data you just gathered, please use an appropriate prompt to generate a comprehensive, well-structured response that addresses my original request."

// Options tunes model behavior per orchestration round.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// DefaultOptions returns the standard near-deterministic settings for
// capability selection.
func DefaultOptions() Options {
	return Options{Temperature: 0.1, MaxTokens: 4000}
}

// Orchestrator drives one user request through up to two model rounds with
// function calling, invocation execution, and a finalization round.
//
// The registry, schemas, and system prompt are built once at construction
// and read-only afterward; each Chat call owns its own conversation state,
// so a single Orchestrator is safe for concurrent Chat calls.
type Orchestrator struct {
	model        llm.Client
	dispatcher   *Dispatcher
	schemas      []llm.Tool
	systemPrompt string
	options      Options
}

// New builds an orchestrator for the discovered capability set.
func New(model llm.Client, provider Provider, registry *Registry, options Options) (*Orchestrator, error) {
	systemPrompt, err := BuildSystemPrompt(registry)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		model:        model,
		dispatcher:   NewDispatcher(provider, registry),
		schemas:      SynthesizeSchemas(registry),
		systemPrompt: systemPrompt,
		options:      options,
	}, nil
}

// Schemas returns the synthesized function schemas.
func (o *Orchestrator) Schemas() []llm.Tool {
	return o.schemas
}

// SystemPrompt returns the assembled system instruction text.
func (o *Orchestrator) SystemPrompt() string {
	return o.systemPrompt
}

// Chat answers one user message. Model-call failures abort the request and
// are returned as errors; everything else degrades to text so a request
// always terminates with some answer. The orchestrator stays usable after
// an error.
func (o *Orchestrator) Chat(ctx context.Context, userMessage string) (string, error) {
	requestID := uuid.NewString()[:8]
	logging.Debug("Orchestrator", "[%s] Chat: %q", requestID, userMessage)

	messages := []llm.ChatMessage{
		{Role: "system", Content: o.systemPrompt},
		{Role: "user", Content: userMessage},
	}

	completion, err := o.model.Complete(ctx, llm.CompletionRequest{
		Messages:    messages,
		Tools:       o.schemas,
		ToolChoice:  llm.ToolChoiceAuto,
		Temperature: o.options.Temperature,
		MaxTokens:   o.options.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	// Plain text with no calls is terminal: no execution, no finalization.
	if !completion.HasToolCalls() {
		logging.Debug("Orchestrator", "[%s] Model answered directly, no calls", requestID)
		return completion.Text, nil
	}

	logging.Debug("Orchestrator", "[%s] Model requested %d call(s)", requestID, len(completion.ToolCalls))
	messages = o.executeRound(ctx, messages, completion, userMessage)

	if o.shouldContinue(completion.ToolCalls, userMessage) {
		logging.Debug("Orchestrator", "[%s] Continuation round triggered", requestID)
		messages = append(messages, llm.ChatMessage{Role: "user", Content: continuationPrompt})

		followUp, err := o.model.Complete(ctx, llm.CompletionRequest{
			Messages:    messages,
			Tools:       o.schemas,
			ToolChoice:  llm.ToolChoiceAuto,
			Temperature: o.options.Temperature,
			MaxTokens:   o.options.MaxTokens,
		})
		if err != nil {
			return "", err
		}
		if followUp.HasToolCalls() {
			logging.Debug("Orchestrator", "[%s] Continuation requested %d call(s)", requestID, len(followUp.ToolCalls))
			messages = o.executeRound(ctx, messages, followUp, userMessage)
		}
	}

	// Finalize over the full transcript with function calling disabled.
	final, err := o.model.Complete(ctx, llm.CompletionRequest{
		Messages:    messages,
		ToolChoice:  llm.ToolChoiceNone,
		Temperature: o.options.Temperature,
		MaxTokens:   o.options.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	logging.Debug("Orchestrator", "[%s] Finalized", requestID)
	return final.Text, nil
}

// executeRound appends the assistant turn, executes every requested call,
// and appends one result message per call in original request order.
// Calls within the round are independent and run concurrently; ordering is
// restored before the results join the transcript because result order is
// part of the context the model reasons over next.
func (o *Orchestrator) executeRound(ctx context.Context, messages []llm.ChatMessage, completion *llm.Completion, userMessage string) []llm.ChatMessage {
	assistantCalls := make([]llm.ChatToolCall, len(completion.ToolCalls))
	for i, call := range completion.ToolCalls {
		assistantCalls[i] = llm.ChatToolCall{
			ID:   call.ID,
			Type: "function",
			Function: llm.ChatFunctionCall{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		}
	}
	messages = append(messages, llm.ChatMessage{
		Role:      "assistant",
		Content:   completion.Text,
		ToolCalls: assistantCalls,
	})

	// Execute all calls even if some fail; each produces exactly one result.
	results := make([]InvocationResult, len(completion.ToolCalls))
	g, gctx := errgroup.WithContext(ctx)
	for i, call := range completion.ToolCalls {
		g.Go(func() error {
			args := parseArguments(call.Arguments)
			if len(args) == 0 && userMessage != "" {
				args = ExtractArguments(call.Name, userMessage)
				if len(args) > 0 {
					logging.Debug("Orchestrator", "Fallback extraction for %s: %v", call.Name, args)
				}
			}
			results[i] = o.dispatcher.Dispatch(gctx, call.ID, call.Name, args)
			return nil
		})
	}
	_ = g.Wait()

	for _, result := range results {
		messages = append(messages, llm.ChatMessage{
			Role:       "tool",
			Content:    result.ResultText,
			ToolCallID: result.CallID,
		})
	}
	return messages
}

// shouldContinue decides whether to run the single continuation round:
// the first round must have executed at least one tool call and no prompt
// call, and the user text must ask for comprehensive output. The keyword
// match is a replaceable heuristic, not a correctness guarantee.
func (o *Orchestrator) shouldContinue(calls []llm.ToolCall, userMessage string) bool {
	hasToolCall := false
	hasPromptCall := false
	for _, call := range calls {
		if strings.HasPrefix(call.Name, toolPrefix) {
			hasToolCall = true
		}
		if strings.HasPrefix(call.Name, promptPrefix) {
			hasPromptCall = true
		}
	}
	if !hasToolCall || hasPromptCall {
		return false
	}

	lower := strings.ToLower(userMessage)
	for _, keyword := range comprehensivenessKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// parseArguments decodes the model's raw argument text. The text is not
// trusted: malformed or truncated JSON degrades to an empty mapping and
// never raises, which in turn hands control to ExtractArguments.
func parseArguments(raw string) map[string]any {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil || args == nil {
		return map[string]any{}
	}
	return args
}
