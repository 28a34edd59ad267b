package out

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	pluginrpc "sprintbell/internal/modules/effects/adapter/out/rpc"
	"sprintbell/internal/modules/effects/domain"
	effectsout "sprintbell/internal/modules/effects/port/out"
	apperrors "sprintbell/internal/platform/errors"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// PluginBackend launches an external notifier binary per notification and
// talks to it over go-plugin gRPC.
type PluginBackend struct {
	binary string
	logger hclog.Logger
}

func NewPluginBackend(binary string, logger hclog.Logger) effectsout.Backend {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &PluginBackend{binary: binary, logger: logger}
}

func (b *PluginBackend) Name() string {
	return domain.BackendPlugin
}

func (b *PluginBackend) Available(_ context.Context) error {
	if b.binary == "" {
		return fmt.Errorf("%w: no notifier plugin configured", apperrors.ErrNotifierUnavailable)
	}
	info, err := os.Stat(b.binary)
	if err != nil {
		return fmt.Errorf("%w: stat plugin: %v", apperrors.ErrNotifierUnavailable, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: plugin path %s is a directory", apperrors.ErrNotifierUnavailable, b.binary)
	}
	return nil
}

func (b *PluginBackend) Deliver(ctx context.Context, notification domain.Notification) error {
	client, closeFn, err := b.connect()
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	actions := make([]pluginrpc.Action, 0, len(notification.Actions))
	for _, action := range notification.Actions {
		actions = append(actions, pluginrpc.Action{ID: action.ID, Title: action.Title})
	}
	response, err := client.Notify(callCtx, &pluginrpc.NotifyRequest{
		Title:    notification.Title,
		Body:     notification.Body,
		Category: notification.Category,
		Actions:  actions,
		Sound:    notification.Sound,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("notify: plugin timed out after %s", defaultCallTimeout)
		}
		return fmt.Errorf("notify: %w", err)
	}
	if !response.Delivered {
		return fmt.Errorf("plugin declined notification: %s", response.Detail)
	}
	return nil
}

// Describe starts the plugin and returns its metadata.
func (b *PluginBackend) Describe(ctx context.Context) (pluginrpc.Metadata, error) {
	client, closeFn, err := b.connect()
	if err != nil {
		return pluginrpc.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return pluginrpc.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return *meta, nil
}

func (b *PluginBackend) connect() (pluginrpc.NotifierClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pluginrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          pluginrpc.PluginMap(nil),
		Cmd:              exec.Command(b.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           b.logger.Named("plugin"),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(pluginrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(pluginrpc.NotifierClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
