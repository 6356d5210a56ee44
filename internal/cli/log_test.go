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

	logger.Info("merging files")

	out := buf.String()
	if !strings.Contains(out, "merging files") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Errorf("output %q missing level", out)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		logf  func(*log.Logger)
		want  bool
	}{
		{"debug visible at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("probe") }, true},
		{"debug hidden at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("probe") }, false},
		{"info hidden at error level", log.ErrorLevel, func(l *log.Logger) { l.Info("probe") }, false},
		{"error visible at error level", log.ErrorLevel, func(l *log.Logger) { l.Error("probe") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logf(newLogger(&buf, tt.level))

			if got := strings.Contains(buf.String(), "probe"); got != tt.want {
				t.Errorf("logged = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("before")
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("after")

	out := buf.String()
	if strings.Contains(out, "before") {
		t.Error("debug message logged at info level")
	}
	if !strings.Contains(out, "after") {
		t.Error("debug message missing after level change")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	prog.done("Merged 3 files")

	out := buf.String()
	if !strings.Contains(out, "Merged 3 files") {
		t.Errorf("output %q missing message", out)
	}
	// Elapsed time is appended in parentheses.
	if !strings.Contains(out, "(") || !strings.Contains(out, ")") {
		t.Errorf("output %q missing elapsed time", out)
	}
}

func TestProgressElapsed(t *testing.T) {
	prog := newProgress(log.Default())
	if prog.elapsed() < 0 {
		t.Errorf("elapsed() = %v, want >= 0", prog.elapsed())
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)
	loggerFromContext(ctx).Info("from context")

	if !strings.Contains(buf.String(), "from context") {
		t.Error("context logger not used")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("expected fallback logger, got nil")
	}
}
