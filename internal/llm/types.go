package llm

// Chat Completions wire types for OpenAI-compatible model endpoints.

// ChatMessage represents one message in the Chat Completions format. The
// orchestrator builds its per-request transcript out of these directly.
type ChatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []ChatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

// ChatToolCall represents a tool call in an assistant message.
type ChatToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ChatFunctionCall `json:"function"`
}

// ChatFunctionCall holds the function name and its raw argument text.
// Arguments is whatever the model produced; it is not guaranteed to be
// valid JSON and consumers must parse it defensively.
type ChatFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Tool is a function definition offered to the model.
type Tool struct {
	Type     string      `json:"type"`
	Function FunctionDef `json:"function"`
}

// FunctionDef describes one callable function.
type FunctionDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Tools       []Tool        `json:"tools,omitempty"`
	ToolChoice  string        `json:"tool_choice,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage,omitempty"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ToolChoice values accepted by CompletionRequest.
const (
	ToolChoiceAuto = "auto"
	ToolChoiceNone = "none"
)

// CompletionRequest is one orchestration round sent to the model.
type CompletionRequest struct {
	Messages    []ChatMessage
	Tools       []Tool
	ToolChoice  string
	Temperature float64
	MaxTokens   int
}

// ToolCall is one function invocation requested by the model. Arguments is
// the raw argument text as produced by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Completion is the model's answer for one round: either final text or a
// list of requested tool calls (Text may still carry commentary alongside
// calls, which the orchestrator preserves in the transcript).
type Completion struct {
	Text         string
	ToolCalls    []ToolCall
	FinishReason string
}

// HasToolCalls reports whether the model requested any invocations.
func (c *Completion) HasToolCalls() bool {
	return len(c.ToolCalls) > 0
}
