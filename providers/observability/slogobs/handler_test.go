package slogobs

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(format Format, level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := NewHandler(&HandlerOptions{
		Format: format,
		Level:  level,
		Output: &buf,
	})
	return slog.New(handler), &buf
}

func TestHandler_Compact(t *testing.T) {
	logger, buf := newTestLogger(FormatCompact, slog.LevelDebug)
	logger.Info("chunk dropped", "png.chunk.type", "zTXt", "png.chunk.offset", 33)

	output := buf.String()
	for _, want := range []string{" INFO ", "chunk dropped", " -> ", `"png.chunk.type":"zTXt"`, `"png.chunk.offset":33`} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
	if strings.Count(output, "\n") != 1 {
		t.Errorf("Expected a single line, got: %q", output)
	}
}

func TestHandler_Pretty(t *testing.T) {
	logger, buf := newTestLogger(FormatPretty, slog.LevelDebug)
	logger.Warn("fallback selection", "b", 2, "a", "one")

	output := buf.String()
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus two attribute lines, got: %q", output)
	}
	if !strings.Contains(lines[0], "WARN") || !strings.Contains(lines[0], "fallback selection") {
		t.Errorf("Unexpected header line: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "|- a: one") {
		t.Errorf("Expected sorted first attribute, got: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "`- b: 2") {
		t.Errorf("Expected last attribute branch, got: %q", lines[2])
	}
}

func TestHandler_JSON(t *testing.T) {
	logger, buf := newTestLogger(FormatJSON, slog.LevelDebug)
	logger.Error("extract failed", "error", "truncated chunk")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Output is not valid JSON: %v (%q)", err, buf.String())
	}
	if record["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", record["level"])
	}
	if record["msg"] != "extract failed" {
		t.Errorf("msg = %v, want %q", record["msg"], "extract failed")
	}
	if record["error"] != "truncated chunk" {
		t.Errorf("error = %v, want %q", record["error"], "truncated chunk")
	}
}

func TestHandler_LevelFiltering(t *testing.T) {
	logger, buf := newTestLogger(FormatCompact, slog.LevelWarn)
	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("Records below WARN should be filtered, got: %s", output)
	}
	if !strings.Contains(output, "shown") {
		t.Errorf("WARN record missing, got: %s", output)
	}
}

func TestHandler_NoAttributes(t *testing.T) {
	logger, buf := newTestLogger(FormatCompact, slog.LevelInfo)
	logger.Info("plain")

	if strings.Contains(buf.String(), "->") {
		t.Errorf("Expected no attribute separator, got: %s", buf.String())
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	logger, buf := newTestLogger(FormatJSON, slog.LevelInfo)
	logger.With("input.path", "card.png").WithGroup("card").Info("done", "method", "strict")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if record["input.path"] != "card.png" {
		t.Errorf("input.path = %v, want card.png", record["input.path"])
	}
	if record["card.method"] != "strict" {
		t.Errorf("card.method = %v, want strict (record: %v)", record["card.method"], record)
	}
}

func TestHandler_TraceLevel(t *testing.T) {
	logger, buf := newTestLogger(FormatCompact, LevelTrace)
	logger.Log(context.Background(), LevelTrace, "very detailed")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("Expected TRACE level in output, got: %s", buf.String())
	}
}

func TestNewHandler_Defaults(t *testing.T) {
	h := NewHandler(nil)
	if h.format != FormatCompact {
		t.Errorf("format = %v, want compact", h.format)
	}
	if h.output == nil {
		t.Error("output should default to stderr")
	}
}
