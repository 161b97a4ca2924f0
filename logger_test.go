package spanpix

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger returned nil")
	}
	// Must not panic and must not write anywhere.
	Logger().Debug("silent", "k", 1)
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	Logger().Debug("hello", "k", 42)
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("log output missing message: %q", buf.String())
	}

	SetLogger(nil)
	buf.Reset()
	Logger().Debug("after reset")
	if buf.Len() != 0 {
		t.Errorf("nil logger should silence output, got %q", buf.String())
	}
}

func TestInvalidPolygonLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	path := NewPath()
	path.MoveTo(0, 0).LineTo(1e9, 0)
	mask := NewPolygonMask(path, IntRectLTWH(0, 0, 8, 8), FillNonZero)
	if mask.IsValid() {
		t.Fatal("mask should be invalid")
	}
	if !strings.Contains(buf.String(), "vertex out of range") {
		t.Errorf("expected a debug line about the rejected vertex, got %q", buf.String())
	}
}
