package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractArguments(t *testing.T) {
	tests := []struct {
		name          string
		qualifiedName string
		userText      string
		want          map[string]any
	}{
		{
			name:          "calculate verb with expression",
			qualifiedName: "tool_calculator",
			userText:      "calculate 11*3 + 23",
			want:          map[string]any{"expression": "11*3 + 23"},
		},
		{
			name:          "what's question with expression",
			qualifiedName: "tool_calculator",
			userText:      "What's 144 + 25?",
			want:          map[string]any{"expression": "144 + 25"},
		},
		{
			name:          "bare expression in longer sentence",
			qualifiedName: "tool_calculator",
			userText:      "please work out 12.5 * 4 for me",
			want:          map[string]any{"expression": "12.5 * 4"},
		},
		{
			name:          "unicode operators are normalized",
			qualifiedName: "tool_calculator",
			userText:      "calculate 12 × 4",
			want:          map[string]any{"expression": "12 * 4"},
		},
		{
			name:          "no operator means no expression",
			qualifiedName: "tool_calculator",
			userText:      "calculate something for me",
			want:          map[string]any{},
		},
		{
			name:          "weather in city",
			qualifiedName: "tool_weather",
			userText:      "weather in Tokyo",
			want:          map[string]any{"location": "Tokyo"},
		},
		{
			name:          "weather with trailing temporal word",
			qualifiedName: "tool_get_weather",
			userText:      "What is the weather for berlin today?",
			want:          map[string]any{"location": "Berlin"},
		},
		{
			name:          "multi-word location is title-cased",
			qualifiedName: "tool_weather",
			userText:      "weather in new york",
			want:          map[string]any{"location": "New York"},
		},
		{
			name:          "weather without a location",
			qualifiedName: "tool_weather",
			userText:      "how does weather work",
			want:          map[string]any{},
		},
		{
			name:          "research subject gets company search",
			qualifiedName: "tool_duckduckgo_search",
			userText:      "Research Tesla and create a comprehensive report",
			want:          map[string]any{"query": "tesla company information", "search_type": "company"},
		},
		{
			name:          "search for subject",
			qualifiedName: "tool_search",
			userText:      "Search for Apple Inc and analyze the company",
			want:          map[string]any{"query": "apple inc company information", "search_type": "company"},
		},
		{
			name:          "short message fallback uses cleaned text",
			qualifiedName: "tool_duckduckgo_search",
			userText:      "latest golang releases",
			want:          map[string]any{"query": "latest golang releases"},
		},
		{
			name:          "uncategorized capability yields nothing",
			qualifiedName: "tool_translate",
			userText:      "translate hello to french",
			want:          map[string]any{},
		},
		{
			name:          "empty user text yields nothing",
			qualifiedName: "tool_calculator",
			userText:      "",
			want:          map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractArguments(tt.qualifiedName, tt.userText)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractArgumentsIsPure(t *testing.T) {
	first := ExtractArguments("tool_calculator", "calculate 7 + 8")
	second := ExtractArguments("tool_calculator", "calculate 7 + 8")
	assert.Equal(t, first, second)
}
