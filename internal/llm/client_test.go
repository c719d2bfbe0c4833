package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() CompletionRequest {
	return CompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: "you are a test"},
			{Role: "user", Content: "hello"},
		},
		Tools: []Tool{
			{Type: "function", Function: FunctionDef{Name: "tool_calculator"}},
		},
		ToolChoice:  ToolChoiceAuto,
		Temperature: 0.1,
		MaxTokens:   4000,
	}
}

func TestCompleteSuccess(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "cmpl-1",
			"model": "gpt-4o-mini",
			"choices": [{
				"index": 0,
				"message": {
					"role": "assistant",
					"content": "",
					"tool_calls": [{
						"id": "call_abc",
						"type": "function",
						"function": {"name": "tool_calculator", "arguments": "{\"expression\": \"2+2\"}"}
					}]
				},
				"finish_reason": "tool_calls"
			}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "gpt-4o-mini")
	completion, err := client.Complete(context.Background(), testRequest())
	require.NoError(t, err)

	require.True(t, completion.HasToolCalls())
	require.Len(t, completion.ToolCalls, 1)
	assert.Equal(t, "call_abc", completion.ToolCalls[0].ID)
	assert.Equal(t, "tool_calculator", completion.ToolCalls[0].Name)
	assert.Equal(t, `{"expression": "2+2"}`, completion.ToolCalls[0].Arguments)
	assert.Equal(t, "tool_calls", completion.FinishReason)

	assert.Equal(t, "gpt-4o-mini", captured["model"])
	assert.Equal(t, "auto", captured["tool_choice"])
	assert.NotEmpty(t, captured["tools"])
}

func TestCompleteOmitsToolsWhenDisabled(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "final answer"}, "finish_reason": "stop"}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "gpt-4o-mini")
	req := testRequest()
	req.ToolChoice = ToolChoiceNone

	completion, err := client.Complete(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "final answer", completion.Text)
	assert.False(t, completion.HasToolCalls())
	assert.NotContains(t, captured, "tools")
	assert.NotContains(t, captured, "tool_choice")
}

func TestCompleteErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
		wantMsg  string
	}{
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`,
			wantKind: ErrorKindAuth,
			wantMsg:  "Incorrect API key provided",
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     `{"error": {"message": "Rate limit reached", "type": "rate_limit_error"}}`,
			wantKind: ErrorKindRateLimit,
			wantMsg:  "Rate limit reached",
		},
		{
			name:     "server error without structured body",
			status:   http.StatusInternalServerError,
			body:     `upstream exploded`,
			wantKind: ErrorKindAPI,
			wantMsg:  "unexpected status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewOpenAIClient("test-key", server.URL, "gpt-4o-mini")
			_, err := client.Complete(context.Background(), testRequest())
			require.Error(t, err)

			var llmErr *Error
			require.ErrorAs(t, err, &llmErr)
			assert.Equal(t, tt.wantKind, llmErr.Kind)
			assert.Equal(t, tt.status, llmErr.Status)
			assert.Contains(t, llmErr.Message, tt.wantMsg)
		})
	}
}

func TestCompleteMissingAPIKey(t *testing.T) {
	client := NewOpenAIClient("", "http://localhost:0", "gpt-4o-mini")
	_, err := client.Complete(context.Background(), testRequest())
	require.Error(t, err)

	var llmErr *Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, ErrorKindAuth, llmErr.Kind)
}

func TestCompleteMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "gpt-4o-mini")
	_, err := client.Complete(context.Background(), testRequest())
	require.Error(t, err)

	var llmErr *Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, ErrorKindAPI, llmErr.Kind)
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "gpt-4o-mini")
	_, err := client.Complete(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
