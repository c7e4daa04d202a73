package slogobs

import (
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"Trace", "trace", LevelTrace},
		{"Debug uppercase", "DEBUG", slog.LevelDebug},
		{"Debug mixed case", "DeBuG", slog.LevelDebug},
		{"Info lowercase", "info", slog.LevelInfo},
		{"Warn", "WARN", slog.LevelWarn},
		{"Warning", "warning", slog.LevelWarn},
		{"Error", "ERROR", slog.LevelError},
		{"Unknown value", "UNKNOWN", slog.LevelInfo},
		{"Empty string", "", slog.LevelInfo},
		{"With whitespace", "  DEBUG  ", slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ParseLogLevel(tt.input); result != tt.expected {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetLogLevelFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		characard string
		generic   string
		expected  slog.Level
	}{
		{name: "default is WARN", expected: slog.LevelWarn},
		{name: "CHARACARD_LOG_LEVEL takes precedence", characard: "DEBUG", generic: "ERROR", expected: slog.LevelDebug},
		{name: "fallback to LOG_LEVEL", generic: "ERROR", expected: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CHARACARD_LOG_LEVEL", tt.characard)
			t.Setenv("LOG_LEVEL", tt.generic)
			if got := GetLogLevelFromEnv(); got != tt.expected {
				t.Errorf("GetLogLevelFromEnv() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLogLevelRoundTrip(t *testing.T) {
	for _, level := range []slog.Level{LevelTrace, slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if got := ParseLogLevel(LogLevelString(level)); got != level {
			t.Errorf("ParseLogLevel(LogLevelString(%v)) = %v", level, got)
		}
	}
}
