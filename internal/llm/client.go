package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"maestro/pkg/logging"
)

// Client is the chat-completion contract the orchestrator depends on.
// Implementations return either final text or a list of requested tool
// calls; any returned error aborts the current orchestration request only.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

// defaultRequestTimeout bounds a single completion round.
const defaultRequestTimeout = 120 * time.Second

// OpenAIClient talks to an OpenAI-compatible /chat/completions endpoint.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOpenAIClient creates a client for the given endpoint and model.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: defaultRequestTimeout,
		},
	}
}

// Complete performs one chat-completion round.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	if c.apiKey == "" {
		return nil, &Error{Kind: ErrorKindAuth, Message: "API key not configured"}
	}

	temperature := req.Temperature
	body := chatCompletionRequest{
		Model:       c.model,
		Messages:    req.Messages,
		Temperature: &temperature,
	}
	if req.MaxTokens > 0 {
		maxTokens := req.MaxTokens
		body.MaxTokens = &maxTokens
	}
	if len(req.Tools) > 0 && req.ToolChoice != ToolChoiceNone {
		body.Tools = req.Tools
		body.ToolChoice = req.ToolChoice
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, &Error{Kind: ErrorKindTransport, Message: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return nil, &Error{Kind: ErrorKindTransport, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	logging.Debug("LLM", "Completion round: %d messages, %d tools, tool_choice=%s", len(req.Messages), len(req.Tools), req.ToolChoice)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: ErrorKindTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: ErrorKindTransport, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp.StatusCode, respBody)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, &Error{Kind: ErrorKindAPI, Status: resp.StatusCode, Message: fmt.Sprintf("failed to parse response: %v", err)}
	}
	if len(completion.Choices) == 0 {
		return nil, &Error{Kind: ErrorKindAPI, Status: resp.StatusCode, Message: "no choices in response"}
	}

	choice := completion.Choices[0]
	result := &Completion{
		Text:         choice.Message.Content,
		FinishReason: choice.FinishReason,
	}
	for _, call := range choice.Message.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}

	if completion.Usage != nil {
		logging.Debug("LLM", "Round complete: %d calls, finish=%s, tokens=%d",
			len(result.ToolCalls), result.FinishReason, completion.Usage.TotalTokens)
	}

	return result, nil
}

// apiError converts a non-200 response into a typed Error, extracting the
// endpoint's error message when the body follows the standard error format.
func (c *OpenAIClient) apiError(status int, body []byte) *Error {
	message := fmt.Sprintf("unexpected status %d", status)
	var errResp chatErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}
	return &Error{Kind: classifyStatus(status), Status: status, Message: message}
}
