// Package debug provides category-based debug logging for llmls.
//
// Two orthogonal controls:
//   - Categories (WHAT to debug): controlled via LLMLS_DEBUG env or config
//   - Levels (HOW MUCH detail): controlled via LLMLS_LOG_LEVEL env or config
//
// Usage:
//
//	debug.Log("client", "request", "backend", "tgi", "url", url)
//	if debug.Enabled("client") { /* expensive formatting */ }
//
// Categories: client, config, all.
// Levels: ERROR, WARN, INFO, DEBUG, TRACE.
package debug

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace is below slog.LevelDebug for maximum verbosity.
// At TRACE, full request and response bodies are logged.
const LevelTrace = slog.LevelDebug - 4

// categories and output are read-only after Init.
var (
	categories map[string]bool
	output     io.Writer = os.Stderr
)

func init() {
	categories = parseCategories(os.Getenv("LLMLS_DEBUG"))
}

// Init configures the debug system from config values. Environment
// overrides config. Log output goes to w (stderr when nil), so an editor
// talking to the server over stdout is never disturbed.
func Init(configCategories, configLevel string, w io.Writer) {
	cats := os.Getenv("LLMLS_DEBUG")
	if cats == "" {
		cats = configCategories
	}
	categories = parseCategories(cats)

	level := os.Getenv("LLMLS_LOG_LEVEL")
	if level == "" {
		level = configLevel
	}

	if w == nil {
		w = os.Stderr
	}
	output = w
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})))
}

// Enabled reports whether debug output is active for the given category.
func Enabled(category string) bool {
	return categories["all"] || categories[category]
}

// Log emits a debug message for the given category.
// If the category is not enabled, this is a no-op.
func Log(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Debug(msg, append([]any{"debug", category}, args...)...)
}

// Trace emits a trace-level message for the given category.
// Only visible when LLMLS_LOG_LEVEL=TRACE.
func Trace(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Log(context.Background(), LevelTrace, msg, append([]any{"debug", category}, args...)...)
}

// TraceIsEnabled reports whether TRACE level is active for the given category.
func TraceIsEnabled(category string) bool {
	if !Enabled(category) {
		return false
	}
	return slog.Default().Enabled(context.Background(), LevelTrace)
}

// Raw writes text unformatted to the log output, for wire dumps that should
// stay copy-pasteable. Only emitted when category is enabled at TRACE.
func Raw(category string, text string) {
	if !TraceIsEnabled(category) {
		return
	}
	fmt.Fprintln(output, text)
}

// ParseLevel converts a level string to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "INFO", "":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Truncate returns s truncated to maxLen bytes, with "..." appended if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func parseCategories(s string) map[string]bool {
	m := make(map[string]bool)
	if s == "" {
		return m
	}
	for _, cat := range strings.Split(s, ",") {
		cat = strings.TrimSpace(strings.ToLower(cat))
		if cat != "" {
			m[cat] = true
		}
	}
	return m
}
