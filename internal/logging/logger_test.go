package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"beatmark/internal/config"
	"beatmark/internal/logging"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("startup complete", "beats", 4)

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "beatmark.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "startup complete") {
		t.Fatalf("expected message in log file, got %q", content)
	}
	if !strings.Contains(string(content), "beats=4") {
		t.Fatalf("expected attribute in log file, got %q", content)
	}
}

func TestConsoleHandlerRendersComponentPrefix(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WithComponent(logger, "export").Info("document written", "path", "/tmp/out.fcpxml")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "INFO export: document written") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should not render as key/value, got %q", line)
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "level.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "warn",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("kept")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), "suppressed") {
		t.Fatalf("info should be suppressed at warn level: %q", content)
	}
	if !strings.Contains(string(content), "kept") {
		t.Fatalf("warn should be logged: %q", content)
	}
}

func TestJSONFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("analysis complete")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"analysis complete"`) {
		t.Fatalf("expected json message key, got %q", content)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
