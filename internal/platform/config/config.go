package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Version is stamped at build time with -ldflags "-X sprintbell/internal/platform/config.Version=...".
var Version = "1.0.0"

const (
	fileName = "config.yaml"

	defaultMaxLogFiles     = 5
	defaultMaxLogFileBytes = 10 * 1024 * 1024
	defaultSnapshotEvery   = 10
	defaultRestoreGrace    = 60 * time.Second
)

type Config struct {
	DataDir         string
	DBPath          string
	LogDir          string
	SocketPath      string
	PIDPath         string
	NotifierPlugin  string
	MaxLogFiles     int
	MaxLogFileBytes int64
	SnapshotEvery   int
	RestoreGrace    time.Duration
	LogLevel        string
	LogFile         string
	AppVersion      string
	Platform        string
	Notifiers       []string
	SoundCommand    []string
}

// fileConfig mirrors config.yaml. Pointer fields distinguish "unset" from zero values.
type fileConfig struct {
	LogDir          *string  `yaml:"log_dir"`
	NotifierPlugin  *string  `yaml:"notifier_plugin"`
	MaxLogFiles     *int     `yaml:"max_log_files"`
	MaxLogFileBytes *int64   `yaml:"max_log_file_bytes"`
	SnapshotEvery   *int     `yaml:"snapshot_every"`
	RestoreGrace    *string  `yaml:"restore_grace"`
	LogLevel        *string  `yaml:"log_level"`
	LogFile         *string  `yaml:"log_file"`
	Notifiers       []string `yaml:"notifiers"`
	SoundCommand    []string `yaml:"sound_command"`
}

// Default returns the built-in configuration rooted at dataDir.
func Default(dataDir string) Config {
	return Config{
		DataDir:         dataDir,
		DBPath:          filepath.Join(dataDir, "sprintbell.db"),
		LogDir:          filepath.Join(dataDir, "SessionLogs"),
		SocketPath:      filepath.Join(dataDir, "run", "daemon.sock"),
		PIDPath:         filepath.Join(dataDir, "run", "daemon.pid"),
		NotifierPlugin:  filepath.Join(dataDir, "plugins", "sprintbell-notifier"),
		MaxLogFiles:     defaultMaxLogFiles,
		MaxLogFileBytes: defaultMaxLogFileBytes,
		SnapshotEvery:   defaultSnapshotEvery,
		RestoreGrace:    defaultRestoreGrace,
		LogLevel:        "info",
		AppVersion:      Version,
		Platform:        platformName(runtime.GOOS),
		Notifiers:       []string{"plugin", "system", "console"},
		SoundCommand:    defaultSoundCommand(runtime.GOOS),
	}
}

// New resolves configuration: defaults, then <dataDir>/config.yaml, then SPRINTBELL_* environment.
// An empty dataDir resolves to the user config directory.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		dataDir = os.Getenv("SPRINTBELL_DATA_DIR")
	}
	if strings.TrimSpace(dataDir) == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve data dir: %w", err)
		}
		dataDir = filepath.Join(base, "SprintBell")
	}
	cfg := Default(dataDir)
	if err := cfg.loadFile(filepath.Join(dataDir, fileName)); err != nil {
		return Config{}, err
	}
	if err := cfg.loadEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	if c.MaxLogFiles < 1 {
		return fmt.Errorf("max_log_files must be at least 1, got %d", c.MaxLogFiles)
	}
	if c.MaxLogFileBytes < 1 {
		return fmt.Errorf("max_log_file_bytes must be positive, got %d", c.MaxLogFileBytes)
	}
	if c.SnapshotEvery < 1 {
		return fmt.Errorf("snapshot_every must be at least 1, got %d", c.SnapshotEvery)
	}
	if c.RestoreGrace < 0 {
		return fmt.Errorf("restore_grace must not be negative")
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	decoded := fileConfig{}
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&decoded); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	if decoded.LogDir != nil {
		c.LogDir = c.resolvePath(*decoded.LogDir)
	}
	if decoded.NotifierPlugin != nil {
		c.NotifierPlugin = c.resolvePath(*decoded.NotifierPlugin)
	}
	if decoded.MaxLogFiles != nil {
		c.MaxLogFiles = *decoded.MaxLogFiles
	}
	if decoded.MaxLogFileBytes != nil {
		c.MaxLogFileBytes = *decoded.MaxLogFileBytes
	}
	if decoded.SnapshotEvery != nil {
		c.SnapshotEvery = *decoded.SnapshotEvery
	}
	if decoded.RestoreGrace != nil {
		grace, err := time.ParseDuration(*decoded.RestoreGrace)
		if err != nil {
			return fmt.Errorf("decode restore_grace: %w", err)
		}
		c.RestoreGrace = grace
	}
	if decoded.LogLevel != nil {
		c.LogLevel = *decoded.LogLevel
	}
	if decoded.LogFile != nil {
		c.LogFile = c.resolvePath(*decoded.LogFile)
	}
	if len(decoded.Notifiers) > 0 {
		c.Notifiers = decoded.Notifiers
	}
	if decoded.SoundCommand != nil {
		c.SoundCommand = decoded.SoundCommand
	}
	return nil
}

func (c *Config) loadEnv() error {
	c.LogDir = envOr(c.LogDir, "SPRINTBELL_LOG_DIR")
	c.LogLevel = envOr(c.LogLevel, "SPRINTBELL_LOG_LEVEL")
	c.LogFile = envOr(c.LogFile, "SPRINTBELL_LOG_FILE")
	c.NotifierPlugin = envOr(c.NotifierPlugin, "SPRINTBELL_NOTIFIER_PLUGIN")
	if err := overrideInt(&c.MaxLogFiles, "SPRINTBELL_MAX_LOG_FILES"); err != nil {
		return err
	}
	if err := overrideInt64(&c.MaxLogFileBytes, "SPRINTBELL_MAX_LOG_FILE_BYTES"); err != nil {
		return err
	}
	if err := overrideDuration(&c.RestoreGrace, "SPRINTBELL_RESTORE_GRACE"); err != nil {
		return err
	}
	if val := os.Getenv("SPRINTBELL_NOTIFIERS"); val != "" {
		c.Notifiers = splitList(val)
	}
	if val, ok := os.LookupEnv("SPRINTBELL_SOUND_COMMAND"); ok {
		c.SoundCommand = strings.Fields(val)
	}
	return nil
}

func (c Config) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}

func envOr(current, key string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return current
}

func overrideInt(target *int, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	*target = parsed
	return nil
}

func overrideInt64(target *int64, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	*target = parsed
	return nil
}

func overrideDuration(target *time.Duration, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	*target = parsed
	return nil
}

func splitList(val string) []string {
	out := []string{}
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func platformName(goos string) string {
	switch goos {
	case "darwin":
		return "macOS"
	case "linux":
		return "Linux"
	case "windows":
		return "Windows"
	default:
		return goos
	}
}

func defaultSoundCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"afplay", "/System/Library/Sounds/Glass.aiff"}
	case "linux":
		return []string{"paplay", "/usr/share/sounds/freedesktop/stereo/complete.oga"}
	default:
		return nil
	}
}
