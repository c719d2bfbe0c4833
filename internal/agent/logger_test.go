package agent

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(false, false, false, &buf)

	logger.Info("discovered %d tools", 3)

	assert.Contains(t, buf.String(), "discovered 3 tools")
}

func TestLoggerDebugOnlyWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(false, false, false, &buf)
	logger.Debug("hidden message")
	assert.Empty(t, buf.String())

	verbose := NewLoggerWithWriter(true, false, false, &buf)
	verbose.Debug("visible message")
	assert.Contains(t, buf.String(), "visible message")
}

func TestLoggerColorize(t *testing.T) {
	var plain, colored bytes.Buffer

	NewLoggerWithWriter(false, false, false, &plain).Error("boom")
	assert.NotContains(t, plain.String(), "\033[")

	NewLoggerWithWriter(false, true, false, &colored).Error("boom")
	assert.Contains(t, colored.String(), colorRed)
	assert.Contains(t, colored.String(), colorReset)
}

func TestLoggerRequestSimpleMode(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(false, false, false, &buf)

	logger.Request("initialize", nil)
	logger.Request("tools/list", nil)

	out := buf.String()
	assert.Contains(t, out, "Initializing MCP session...")
	assert.Contains(t, out, "Listing available tools...")
}

func TestLoggerRequestJSONRPCMode(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(false, false, true, &buf)

	logger.Request("tools/call", map[string]interface{}{"name": "calculator"})

	out := buf.String()
	assert.Contains(t, out, "REQUEST (tools/call)")
	assert.Contains(t, out, `"name": "calculator"`)
}

func TestLoggerResponseCountsListEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(false, false, false, &buf)

	logger.Response("tools/list", map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{"name": "calculator"},
			map[string]interface{}{"name": "weather"},
		},
	})

	assert.Contains(t, buf.String(), "Found 2 tools")
}

func TestCountListEntries(t *testing.T) {
	tests := []struct {
		name   string
		result interface{}
		key    string
		want   int
	}{
		{
			name:   "generic map",
			result: map[string]interface{}{"tools": []interface{}{1, 2, 3}},
			key:    "tools",
			want:   3,
		},
		{
			name: "typed struct goes through JSON",
			result: struct {
				Prompts []string `json:"prompts"`
			}{Prompts: []string{"a"}},
			key:  "prompts",
			want: 1,
		},
		{
			name:   "missing key",
			result: map[string]interface{}{"other": 1},
			key:    "tools",
			want:   -1,
		},
		{
			name:   "non-object result",
			result: "plain string",
			key:    "tools",
			want:   -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countListEntries(tt.result, tt.key))
		})
	}
}

func TestDevNullLoggerDiscards(t *testing.T) {
	logger := NewDevNullLogger()
	logger.Info("dropped")
	logger.Error("dropped")
	logger.Success("dropped")
}
