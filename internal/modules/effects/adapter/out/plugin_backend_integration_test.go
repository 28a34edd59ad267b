package out_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	effectsout "sprintbell/internal/modules/effects/adapter/out"
	pluginrpc "sprintbell/internal/modules/effects/adapter/out/rpc"
	"sprintbell/internal/modules/effects/domain"
	"sprintbell/internal/platform/logging"
)

func TestPluginBackendIntegrationNotifierPlugin(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the notifier plugin")
	}
	binPath := buildNotifierPlugin(t)
	outPath := filepath.Join(t.TempDir(), "notifications.jsonl")
	t.Setenv("SPRINTBELL_NOTIFIER_OUT", outPath)

	backend := effectsout.NewPluginBackend(binPath, logging.Discard())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := backend.Available(ctx); err != nil {
		t.Fatalf("available: %v", err)
	}
	meta, err := backend.(*effectsout.PluginBackend).Describe(ctx)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if meta.Name != "notifier" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}

	n := domain.CompletionNotification(domain.Completion{Title: "Deep Work", ActualDurationSeconds: 1500, CompletedGoals: 2, TotalGoals: 2}, domain.DefaultSettings())
	if err := backend.Deliver(ctx, n); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read plugin output: %v", err)
	}
	var got pluginrpc.NotifyRequest
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode plugin output: %v", err)
	}
	if got.Body != "Deep Work • 25:00 • 2/2 goals completed" || len(got.Actions) != 2 {
		t.Fatalf("plugin received %+v", got)
	}
}

func buildNotifierPlugin(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "sprintbell-notifier")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/notifier")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build notifier plugin: %v\n%s", err, string(out))
	}
	return binPath
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
