// Package logging provides leveled slog loggers for predprey.
//
// Operational output goes to stderr through NewLogger. At trace level the
// SampleLogger observer additionally records every solver sample.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/san-kum/predprey/internal/dynamo"
)

// LevelTrace is a custom slog level below Debug for per-sample output.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a level name to a slog.Level.
// Supported values: "error", "warn", "info", "debug", "trace"
// (case-insensitive). Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled text logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// SampleLogger is a dynamo.Observer that logs each sample at trace level.
type SampleLogger struct {
	logger *slog.Logger
}

func NewSampleLogger(logger *slog.Logger) *SampleLogger {
	return &SampleLogger{logger: logger}
}

func (s *SampleLogger) OnStep(x dynamo.State, u dynamo.Control, t float64) {
	if s == nil || s.logger == nil {
		return
	}
	attrs := []slog.Attr{slog.Float64("t", t)}
	if len(x) >= 2 {
		attrs = append(attrs, slog.Float64("prey", x[0]), slog.Float64("predator", x[1]))
	}
	s.logger.LogAttrs(context.Background(), LevelTrace, "sample", attrs...)
}
