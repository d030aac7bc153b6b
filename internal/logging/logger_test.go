package logging_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"backline/internal/config"
	"backline/internal/logging"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("stored collection", logging.String(logging.FieldCollection, "members"))

	content, err := os.ReadFile(cfg.LogPath())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"collection":"members"`) {
		t.Fatalf("expected JSON collection field in log, got %q", content)
	}
}

func TestConsoleLoggerPrefixesComponentAndOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "rider").Info("export finished", logging.String("path", "/tmp/a b.html"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "INFO rider: export finished") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should not be repeated as a field: %q", line)
	}
	if !strings.Contains(line, `path="/tmp/a b.html"`) {
		t.Fatalf("expected quoted value, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestJSONLoggerIncludesCorrelationID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithCorrelationID(context.Background(), "abc-123")
	logging.WithContext(ctx, logger).Debug("derived channels", logging.Int("count", 4))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for _, want := range []string{`"correlation_id":"abc-123"`, `"level":"debug"`, `"count":4`} {
		if !strings.Contains(string(content), want) {
			t.Fatalf("expected %s in %q", want, content)
		}
	}
}

func TestErrorWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "err.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.ErrorWithContext(logger, "could not generate rider", "rider_failed", logging.Error(errors.New("boom")))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for _, want := range []string{"event_type=rider_failed", "error_hint=", "error=boom"} {
		if !strings.Contains(string(content), want) {
			t.Fatalf("expected %s in %q", want, content)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 100) {
		t.Fatal("nop logger should never be enabled")
	}
}

func TestWarnWithContextKeepsCallerFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "icon fallback", "icon_fallback",
		logging.String(logging.FieldImpact, "stage plot uses plain shapes"),
		logging.Path("/icons/amp.svg"),
	)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	for _, want := range []string{`"impact":"stage plot uses plain shapes"`, `"event_type":"icon_fallback"`, `"error_hint":`, `"path":"/icons/amp.svg"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in %q", want, line)
		}
	}
	if strings.Count(line, `"impact"`) != 1 {
		t.Fatalf("expected a single impact field, got %q", line)
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "level.log")
	logger, err := logging.New(logging.Options{Level: "chatty", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("unknown level should not enable debug")
	}
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("unknown level should enable info")
	}
}
