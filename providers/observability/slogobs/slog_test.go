package slogobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/characard/providers/observability"
)

func newTestObserver(level slog.Level) (*Observer, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return New(WithOutput(buf), WithLevel(level), WithFormat(FormatCompact)), buf
}

func TestObserver_SpanLifecycle(t *testing.T) {
	o, buf := newTestObserver(slog.LevelDebug)
	ctx, span := o.StartSpan(context.Background(), observability.SpanExtract,
		observability.Int64(observability.AttrInputSize, 128))

	if observability.SpanFromContext(ctx) != span {
		t.Error("StartSpan should store the span in the returned context")
	}

	span.SetAttributes(observability.String(observability.AttrMethod, "braces"))
	span.SetStatus(observability.StatusOK, "")
	span.End()

	output := buf.String()
	for _, want := range []string{"Span started", "Span ended", `"card.method":"braces"`, `"status":"ok"`, `"input.size":128`} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestObserver_FailedSpanLogsAtWarn(t *testing.T) {
	o, buf := newTestObserver(slog.LevelWarn)
	_, span := o.StartSpan(context.Background(), observability.SpanExtract)
	span.RecordError(errors.New("truncated chunk"))
	span.SetStatus(observability.StatusError, "scan failed")
	span.End()

	output := buf.String()
	if strings.Contains(output, "Span started") {
		t.Errorf("span start is debug and should be filtered: %s", output)
	}
	if !strings.Contains(output, "WARN") || !strings.Contains(output, "truncated chunk") {
		t.Errorf("Expected failed span at WARN with the error, got: %s", output)
	}
}

func TestObserver_Counter(t *testing.T) {
	o, _ := newTestObserver(slog.LevelError)
	ctx := context.Background()

	o.Counter(observability.MetricChunksDropped).Add(ctx, 1)
	o.Counter(observability.MetricChunksDropped).Add(ctx, 2)

	if got := o.CounterValue(observability.MetricChunksDropped); got != 3 {
		t.Errorf("CounterValue() = %d, want 3", got)
	}
	if got := o.CounterValue("unknown"); got != 0 {
		t.Errorf("CounterValue(unknown) = %d, want 0", got)
	}
}

func TestObserver_Levels(t *testing.T) {
	o, buf := newTestObserver(slog.LevelInfo)
	ctx := context.Background()

	o.Trace(ctx, "trace-msg")
	o.Debug(ctx, "debug-msg")
	o.Info(ctx, "info-msg", observability.String("k", "v"))
	o.Warn(ctx, "warn-msg")
	o.Error(ctx, "error-msg")

	output := buf.String()
	for _, hidden := range []string{"trace-msg", "debug-msg"} {
		if strings.Contains(output, hidden) {
			t.Errorf("%q should be filtered at INFO, got: %s", hidden, output)
		}
	}
	for _, shown := range []string{"info-msg", `"k":"v"`, "warn-msg", "error-msg"} {
		if !strings.Contains(output, shown) {
			t.Errorf("Expected %q in output, got: %s", shown, output)
		}
	}
}

func TestObserver_WithLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	o := New(WithLogger(logger))

	if o.Logger() != logger {
		t.Error("WithLogger should be used as-is")
	}
	o.Debug(context.Background(), "through text handler")
	if !strings.Contains(buf.String(), "msg=\"through text handler\"") {
		t.Errorf("Expected text handler output, got: %s", buf.String())
	}
}
