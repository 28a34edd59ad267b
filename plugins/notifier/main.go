package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	pluginrpc "sprintbell/internal/modules/effects/adapter/out/rpc"
)

// outputEnv names a file that receives one JSON line per notification instead of
// the desktop notifier. Tests and headless hosts use it.
const outputEnv = "SPRINTBELL_NOTIFIER_OUT"

type server struct {
	mu     sync.Mutex
	logger hclog.Logger
}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:      "notifier",
		Version:   "1.0.0",
		Platforms: []string{"darwin", "linux"},
	}, nil
}

func (s *server) Notify(ctx context.Context, in *pluginrpc.NotifyRequest) (*pluginrpc.NotifyResponse, error) {
	if path := os.Getenv(outputEnv); path != "" {
		if err := s.appendLine(path, in); err != nil {
			return nil, err
		}
		return &pluginrpc.NotifyResponse{Delivered: true, Detail: "written to " + path}, nil
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", in.Body, in.Title)
		cmd = exec.CommandContext(ctx, "osascript", "-e", script)
	case "linux":
		cmd = exec.CommandContext(ctx, "notify-send", "--app-name=SprintBell", in.Title, in.Body)
	default:
		return &pluginrpc.NotifyResponse{Delivered: false, Detail: "unsupported platform " + runtime.GOOS}, nil
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		s.logger.Warn("desktop notifier failed", "error", err, "output", string(out))
		return &pluginrpc.NotifyResponse{Delivered: false, Detail: err.Error()}, nil
	}
	s.logger.Debug("notification delivered", "title", in.Title)
	return &pluginrpc.NotifyResponse{Delivered: true}, nil
}

func (s *server) appendLine(path string, in *pluginrpc.NotifyRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open notifier output: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(raw, '\n')); err != nil {
		return fmt.Errorf("write notifier output: %w", err)
	}
	return nil
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "notifier",
		Level:      hclog.Debug,
		Output:     os.Stderr,
		JSONFormat: true,
	})
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{logger: logger}),
		GRPCServer:      plugin.DefaultGRPCServer,
		Logger:          logger,
	})
}
