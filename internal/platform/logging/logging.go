package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	hclog "github.com/hashicorp/go-hclog"
)

// Options selects where and how verbosely the root logger writes.
type Options struct {
	Name   string
	Level  string
	File   string
	Output io.Writer
	JSON   bool
}

// New builds the root logger. When File is set, output is appended to that file
// and the returned closer releases it; otherwise Output (default stderr) is used.
func New(opts Options) (hclog.Logger, io.Closer, error) {
	level := hclog.LevelFromString(strings.TrimSpace(opts.Level))
	if level == hclog.NoLevel {
		if strings.TrimSpace(opts.Level) != "" {
			return nil, nil, fmt.Errorf("invalid log level: %s", opts.Level)
		}
		level = hclog.Info
	}

	var closer io.Closer = nopCloser{}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f
	}

	name := opts.Name
	if name == "" {
		name = "sprintbell"
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything; used by tests and plugin hosts.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
