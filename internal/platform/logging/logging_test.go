package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sprintbell/internal/platform/logging"
)

func TestNewWritesLevelledOutput(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger, closer, err := logging.New(logging.Options{Level: "warn", Output: buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("kv write failed", "key", "SprintBell.subGoals")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line must be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "kv write failed") || !strings.Contains(out, "key=SprintBell.subGoals") {
		t.Fatalf("warn line missing fields: %s", out)
	}
}

func TestNewAppendsToFileAndRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "sprintbell.log")
	logger, closer, err := logging.New(logging.Options{Level: "info", File: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("daemon started")
	if err := closer.Close(); err != nil {
		t.Fatalf("close log file: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), "daemon started") {
		t.Fatalf("log file missing line: %s", b)
	}

	if _, _, err := logging.New(logging.Options{Level: "loud"}); err == nil {
		t.Fatalf("unknown level must fail")
	}
}
