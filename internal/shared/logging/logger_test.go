package logging

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":         slog.LevelInfo,
		" DEBUG ":  slog.LevelDebug,
		"warning":  slog.LevelWarn,
		"err":      slog.LevelError,
		"trace":    slog.LevelDebug - 2,
		"nonsense": slog.LevelInfo,
	}
	for input, expected := range cases {
		if got := ParseLevel(input); got != expected {
			t.Fatalf("ParseLevel(%q) expected %v got %v", input, expected, got)
		}
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: "info", Format: "json"})
	logger.Info("table deactivated", slog.Int("tableNumber", 7))

	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected json output, got %s", out)
	}
	if !strings.Contains(out, `"tableNumber":7`) {
		t.Fatalf("expected structured attribute, got %s", out)
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: "warn"})
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %s", buf.String())
	}
}

func TestDailyFileName(t *testing.T) {
	at := time.Date(2025, 3, 10, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	got := DailyFileName("logs", at)
	if got != filepath.Join("logs", "2025-03-11.log") {
		t.Fatalf("unexpected file name: %s", got)
	}
}
