package agent

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// Logger provides formatted console logging for the agent.
type Logger struct {
	verbose     bool
	useColor    bool
	jsonRPCMode bool
	writer      io.Writer
}

// NewLogger creates a new logger writing to stdout.
func NewLogger(verbose, useColor, jsonRPCMode bool) *Logger {
	return &Logger{
		verbose:     verbose,
		useColor:    useColor,
		jsonRPCMode: jsonRPCMode,
		writer:      os.Stdout,
	}
}

// NewDevNullLogger returns a logger that discards everything. Used in tests
// and anywhere console output would be noise.
func NewDevNullLogger() *Logger {
	return &Logger{writer: io.Discard}
}

// NewLoggerWithWriter creates a new logger with a custom writer.
func NewLoggerWithWriter(verbose, useColor, jsonRPCMode bool, writer io.Writer) *Logger {
	return &Logger{
		verbose:     verbose,
		useColor:    useColor,
		jsonRPCMode: jsonRPCMode,
		writer:      writer,
	}
}

// OutputLine writes user-facing output with a newline, without timestamps.
func (l *Logger) OutputLine(format string, args ...interface{}) {
	fmt.Fprintf(l.writer, format+"\n", args...)
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) colorize(text, colorCode string) string {
	if !l.useColor {
		return text
	}
	return fmt.Sprintf("%s%s%s", colorCode, text, colorReset)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "[%s] %s\n", l.timestamp(), msg)
}

// Debug logs a debug message (only in verbose mode).
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "[%s] %s\n", l.timestamp(), l.colorize(msg, colorGray))
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "[%s] %s\n", l.timestamp(), l.colorize(msg, colorRed))
}

// Success logs a success message.
func (l *Logger) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "[%s] %s\n", l.timestamp(), l.colorize(msg, colorGreen))
}

// Request logs an outgoing provider request.
func (l *Logger) Request(method string, params interface{}) {
	if !l.jsonRPCMode {
		switch method {
		case "initialize":
			l.Info("Initializing MCP session...")
		case "tools/list":
			l.Info("Listing available tools...")
		case "resources/list":
			l.Info("Listing available resources...")
		case "prompts/list":
			l.Info("Listing available prompts...")
		default:
			l.Debug("Sending request: %s", method)
		}
		return
	}

	arrow := l.colorize("→", colorBlue)
	methodStr := l.colorize(fmt.Sprintf("REQUEST (%s)", method), colorBlue)
	fmt.Fprintf(l.writer, "[%s] %s %s:\n", l.timestamp(), arrow, methodStr)
	if params != nil {
		fmt.Fprintln(l.writer, l.colorize(prettyJSON(params), colorBlue))
	}
	fmt.Fprintln(l.writer)
}

// Response logs an incoming provider response.
func (l *Logger) Response(method string, result interface{}) {
	if !l.jsonRPCMode {
		switch method {
		case "initialize":
			l.Success("Session initialized successfully")
		case "tools/list":
			if n := countListEntries(result, "tools"); n >= 0 {
				l.Success("Found %d tools", n)
			} else {
				l.Success("Retrieved tool list")
			}
		case "resources/list":
			if n := countListEntries(result, "resources"); n >= 0 {
				l.Success("Found %d resources", n)
			} else {
				l.Success("Retrieved resource list")
			}
		case "prompts/list":
			if n := countListEntries(result, "prompts"); n >= 0 {
				l.Success("Found %d prompts", n)
			} else {
				l.Success("Retrieved prompt list")
			}
		default:
			l.Debug("Received response for: %s", method)
		}
		return
	}

	arrow := l.colorize("←", colorGreen)
	methodStr := l.colorize(fmt.Sprintf("RESPONSE (%s)", method), colorGreen)
	fmt.Fprintf(l.writer, "[%s] %s %s:\n", l.timestamp(), arrow, methodStr)
	if result != nil {
		fmt.Fprintln(l.writer, l.colorize(prettyJSON(result), colorGreen))
	}
	fmt.Fprintln(l.writer)
}

// prettyJSON formats a value as indented JSON for display.
func prettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

// countListEntries counts the entries under the given key in a list
// response, tolerating both typed results and generic maps.
func countListEntries(result interface{}, key string) int {
	if m, ok := result.(map[string]interface{}); ok {
		if entries, ok := m[key].([]interface{}); ok {
			return len(entries)
		}
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return -1
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(jsonBytes, &decoded); err != nil {
		return -1
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(decoded[key], &entries); err != nil {
		return -1
	}
	return len(entries)
}
