package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"sprintbell/internal/platform/config"
)

func TestNewAppliesDefaultsUnderDataDir(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "sprintbell.db") {
		t.Fatalf("unexpected db path: %s", cfg.DBPath)
	}
	if cfg.LogDir != filepath.Join(dir, "SessionLogs") {
		t.Fatalf("unexpected log dir: %s", cfg.LogDir)
	}
	if cfg.MaxLogFiles != 5 || cfg.MaxLogFileBytes != 10*1024*1024 {
		t.Fatalf("unexpected rotation defaults: %d files / %d bytes", cfg.MaxLogFiles, cfg.MaxLogFileBytes)
	}
	if cfg.SnapshotEvery != 10 || cfg.RestoreGrace != time.Minute {
		t.Fatalf("unexpected timer defaults: every=%d grace=%s", cfg.SnapshotEvery, cfg.RestoreGrace)
	}
	if len(cfg.Notifiers) != 3 || cfg.Notifiers[0] != "plugin" {
		t.Fatalf("unexpected notifier chain: %v", cfg.Notifiers)
	}
}

func TestNewReadsYAMLFileAndEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("max_log_files: 3\nrestore_grace: 2m\nlog_dir: logs\nnotifiers: [console]\nsound_command: []\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), payload, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SPRINTBELL_LOG_LEVEL", "debug")
	t.Setenv("SPRINTBELL_MAX_LOG_FILE_BYTES", "2048")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.MaxLogFiles != 3 {
		t.Fatalf("expected yaml max_log_files=3, got %d", cfg.MaxLogFiles)
	}
	if cfg.RestoreGrace != 2*time.Minute {
		t.Fatalf("expected yaml restore grace 2m, got %s", cfg.RestoreGrace)
	}
	if cfg.LogDir != filepath.Join(dir, "logs") {
		t.Fatalf("expected relative log dir resolved under data dir, got %s", cfg.LogDir)
	}
	if len(cfg.Notifiers) != 1 || cfg.Notifiers[0] != "console" {
		t.Fatalf("unexpected notifiers: %v", cfg.Notifiers)
	}
	if len(cfg.SoundCommand) != 0 {
		t.Fatalf("expected empty sound command, got %v", cfg.SoundCommand)
	}
	if cfg.LogLevel != "debug" || cfg.MaxLogFileBytes != 2048 {
		t.Fatalf("env overrides not applied: level=%s bytes=%d", cfg.LogLevel, cfg.MaxLogFileBytes)
	}
}

func TestNewRejectsUnknownYAMLKeysAndInvalidValues(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("max_log_filez: 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.New(dir); err == nil {
		t.Fatalf("unknown key must fail")
	}

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("max_log_files: 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.New(dir); err == nil {
		t.Fatalf("zero max_log_files must fail validation")
	}
}
