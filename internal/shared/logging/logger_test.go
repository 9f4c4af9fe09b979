package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for raw, expected := range cases {
		if got := ParseLevel(raw); got != expected {
			t.Fatalf("expected %s for %q, got %s", expected, raw, got)
		}
	}
}

func TestNewJSONLoggerWritesComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := Component(New(&buf, Config{Level: "info", Format: "json"}), "console")
	logger.Info("session opened", slog.String("sessionId", "s-1"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json output, got %q", buf.String())
	}
	if entry["component"] != "console" || entry["sessionId"] != "s-1" {
		t.Fatalf("unexpected attributes %v", entry)
	}
}

func TestOpenCreatesDailyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	logger, _, closer, err := Open(Config{Directory: dir, Format: "text"}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "2026-03-04.log"))
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if !bytes.Contains(data, []byte("hello")) {
		t.Fatalf("expected message in file, got %q", data)
	}
}
