package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/san-kum/predprey/internal/dynamo"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"uppercase TRACE", "TRACE", LevelTrace},
		{"mixed case Debug", "Debug", slog.LevelDebug},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", &buf)

	logger.Debug("hidden")
	logger.Info("shown", "prey", 50)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message written at info level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "prey=50") {
		t.Errorf("expected info message with attrs, got %q", out)
	}
}

func TestTraceLevelLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("trace", &buf)

	NewSampleLogger(logger).OnStep(dynamo.State{50, 10}, nil, 0.5)

	out := buf.String()
	if !strings.Contains(out, "level=TRACE") {
		t.Errorf("expected TRACE label, got %q", out)
	}
	if !strings.Contains(out, "prey=50") || !strings.Contains(out, "predator=10") {
		t.Errorf("expected populations in sample log, got %q", out)
	}
}

func TestSampleLoggerQuietAboveTrace(t *testing.T) {
	var buf bytes.Buffer
	NewSampleLogger(NewLogger("debug", &buf)).OnStep(dynamo.State{1, 1}, nil, 0)

	if buf.Len() != 0 {
		t.Errorf("expected no output at debug level, got %q", buf.String())
	}

	var nilLogger *SampleLogger
	nilLogger.OnStep(dynamo.State{1, 1}, nil, 0)
}
