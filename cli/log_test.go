package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Info("placed")
	if !strings.Contains(buf.String(), "placed") {
		t.Errorf("Expected log output to contain 'placed', got %q", buf.String())
	}

	buf.Reset()
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected debug output to be filtered at info level, got %q", buf.String())
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     log.Level
		wantDebug bool
		wantInfo  bool
	}{
		{name: "debug", level: log.DebugLevel, wantDebug: true, wantInfo: true},
		{name: "info", level: log.InfoLevel, wantInfo: true},
		{name: "warn", level: log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)

			logger.Debug("debug-line")
			logger.Info("info-line")

			out := buf.String()
			if got := strings.Contains(out, "debug-line"); got != tt.wantDebug {
				t.Errorf("Expected debug output %v, got %v", tt.wantDebug, got)
			}
			if got := strings.Contains(out, "info-line"); got != tt.wantInfo {
				t.Errorf("Expected info output %v, got %v", tt.wantInfo, got)
			}
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("Expected log.Default() without a logger in context")
	}

	logger := newLogger(&bytes.Buffer{}, log.InfoLevel)
	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("Expected the logger attached to the context")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("Ran script.js")

	out := buf.String()
	if !strings.Contains(out, "Ran script.js (") || !strings.Contains(out, "s)") {
		t.Errorf("Expected message with elapsed time, got %q", out)
	}
}
