package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	commanddto "sprintbell/internal/modules/command/dto"
	out "sprintbell/internal/modules/daemon/adapter/out"
	"sprintbell/internal/modules/daemon/dto"
	subgoaldto "sprintbell/internal/modules/subgoal/dto"
	timerdto "sprintbell/internal/modules/timer/dto"
	apperrors "sprintbell/internal/platform/errors"
)

type fakeIPCHandler struct {
	mu       sync.Mutex
	stopped  bool
	timerReq dto.TimerRequest
}

func (h *fakeIPCHandler) Open(_ context.Context, rawURL string) (commanddto.Result, error) {
	return commanddto.Result{Command: "start", Message: "opened " + rawURL}, nil
}
func (h *fakeIPCHandler) Status(context.Context) (dto.StatusOutput, error) {
	return dto.StatusOutput{
		PID:   42,
		Timer: timerdto.StateOutput{RemainingSeconds: 1500, Title: "Deep Work", Phase: "idle"},
		Goals: subgoaldto.ListOutput{Total: 1, Goals: []subgoaldto.GoalOutput{{ID: "g1", Text: "draft"}}},
	}, nil
}
func (h *fakeIPCHandler) Timer(_ context.Context, req dto.TimerRequest) (timerdto.StateOutput, error) {
	h.mu.Lock()
	h.timerReq = req
	h.mu.Unlock()
	if req.Action == "explode" {
		return timerdto.StateOutput{}, errors.New("boom")
	}
	return timerdto.StateOutput{RemainingSeconds: 600, Title: *req.Title, IsRunning: true}, nil
}
func (h *fakeIPCHandler) Goals(_ context.Context, req dto.GoalsRequest) (subgoaldto.ListOutput, error) {
	return subgoaldto.ListOutput{Total: 1, Goals: []subgoaldto.GoalOutput{{ID: "g1", Text: req.Arg}}}, nil
}
func (h *fakeIPCHandler) Stop(context.Context) error {
	h.mu.Lock()
	h.stopped = true
	h.mu.Unlock()
	return nil
}

func TestJSONRPCServerClientContract(t *testing.T) {
	t.Parallel()
	h := &fakeIPCHandler{}
	server := out.NewJSONRPCServer()
	client := out.NewJSONRPCClient()
	socketPath := filepath.Join(t.TempDir(), "daemon.sock")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ctx, socketPath, h)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_, err := client.Status(context.Background(), socketPath)
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	status, err := client.Status(context.Background(), socketPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.PID != 42 || status.Timer.Title != "Deep Work" || len(status.Goals.Goals) != 1 {
		t.Fatalf("unexpected status output: %+v", status)
	}

	opened, err := client.Open(context.Background(), socketPath, "sprintbell://pause")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if opened.Message != "opened sprintbell://pause" {
		t.Fatalf("unexpected open output: %+v", opened)
	}

	seconds := 600
	title := "Review"
	state, err := client.Timer(context.Background(), socketPath, dto.TimerRequest{Action: dto.TimerNew, DurationSeconds: &seconds, Title: &title, KeepSubGoals: true})
	if err != nil {
		t.Fatalf("timer: %v", err)
	}
	if state.Title != "Review" || !state.IsRunning {
		t.Fatalf("unexpected timer output: %+v", state)
	}
	h.mu.Lock()
	got := h.timerReq
	h.mu.Unlock()
	if got.DurationSeconds == nil || *got.DurationSeconds != 600 || !got.KeepSubGoals {
		t.Fatalf("timer request lost fields: %+v", got)
	}

	if _, err := client.Timer(context.Background(), socketPath, dto.TimerRequest{Action: "explode", Title: &title}); err == nil {
		t.Fatalf("expected handler error to reach client")
	}

	goals, err := client.Goals(context.Background(), socketPath, dto.GoalsRequest{Action: dto.GoalsAdd, Arg: "write tests"})
	if err != nil {
		t.Fatalf("goals: %v", err)
	}
	if goals.Goals[0].Text != "write tests" {
		t.Fatalf("unexpected goals output: %+v", goals)
	}

	if err := client.Stop(context.Background(), socketPath); err != nil {
		t.Fatalf("stop rpc: %v", err)
	}
	h.mu.Lock()
	stopped := h.stopped
	h.mu.Unlock()
	if !stopped {
		t.Fatalf("expected stop hook to run")
	}

	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve exit error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("server did not shut down")
	}
}

func TestJSONRPCClientWithoutDaemon(t *testing.T) {
	t.Parallel()
	client := out.NewJSONRPCClient()
	_, err := client.Status(context.Background(), filepath.Join(t.TempDir(), "missing.sock"))
	if !errors.Is(err, apperrors.ErrDaemonNotRunning) {
		t.Fatalf("expected ErrDaemonNotRunning, got %v", err)
	}
}

func TestFileDaemonStorePID(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := out.NewFileDaemonStore(filepath.Join(dir, "run", "daemon.pid"), filepath.Join(dir, "run", "daemon.sock"), filepath.Join(dir, "daemon.log"))
	ctx := context.Background()

	if _, err := store.ReadPID(ctx); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected missing pid error, got %v", err)
	}
	if err := store.WritePID(ctx, 0); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("non-positive pid must be rejected, got %v", err)
	}
	if err := store.WritePID(ctx, 1234); err != nil {
		t.Fatalf("write pid: %v", err)
	}
	pid, err := store.ReadPID(ctx)
	if err != nil || pid != 1234 {
		t.Fatalf("read pid = %d, %v", pid, err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "run"))
	if len(entries) != 1 {
		t.Fatalf("pid write must not leave temp files, found %d entries", len(entries))
	}
	if err := os.WriteFile(filepath.Join(dir, "run", "daemon.pid"), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("seed pid: %v", err)
	}
	if _, err := store.ReadPID(ctx); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("garbage pid must be invalid, got %v", err)
	}
	if err := store.ClearPID(ctx); err != nil {
		t.Fatalf("clear pid: %v", err)
	}
	if err := store.ClearPID(ctx); err != nil {
		t.Fatalf("clear twice: %v", err)
	}
}
