package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	commanddto "sprintbell/internal/modules/command/dto"
	commandin "sprintbell/internal/modules/command/port/in"
	"sprintbell/internal/modules/daemon/dto"
	daemonout "sprintbell/internal/modules/daemon/port/out"
	subgoaldto "sprintbell/internal/modules/subgoal/dto"
	subgoalin "sprintbell/internal/modules/subgoal/port/in"
	timerdto "sprintbell/internal/modules/timer/dto"
	timerin "sprintbell/internal/modules/timer/port/in"
	"sprintbell/internal/platform/clock"
	apperrors "sprintbell/internal/platform/errors"
)

const (
	daemonStartTimeout = 5 * time.Second
	daemonStopTimeout  = 3 * time.Second
)

// Deps wires the daemon. Timer, Goals and Commands are only needed by Run;
// a client-side service leaves them nil.
type Deps struct {
	Store    daemonout.DaemonStore
	Server   daemonout.IPCServer
	Client   daemonout.IPCClient
	Timer    timerin.Usecase
	Goals    subgoalin.Usecase
	Commands commandin.Usecase
	Clock    clock.Clock
	Logger   hclog.Logger
}

type DaemonService struct {
	deps Deps

	mu        sync.Mutex
	cancelRun context.CancelFunc
	startedAt time.Time
}

func NewDaemonService(deps Deps) *DaemonService {
	if deps.Logger == nil {
		deps.Logger = hclog.NewNullLogger()
	}
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	return &DaemonService{deps: deps}
}

func (s *DaemonService) Run(ctx context.Context) error {
	if s.deps.Timer == nil || s.deps.Goals == nil || s.deps.Commands == nil {
		return errors.New("daemon run requires timer, goals and commands")
	}
	if err := s.cleanupStaleArtifacts(ctx); err != nil {
		return err
	}
	socketPath := s.deps.Store.SocketPath()
	if socketReachable(socketPath) {
		return fmt.Errorf("daemon already listening on %s", socketPath)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.mu.Lock()
	s.cancelRun = cancel
	s.startedAt = s.deps.Clock.Now()
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.cancelRun = nil
		s.mu.Unlock()
	}()

	if err := s.deps.Store.WritePID(ctx, os.Getpid()); err != nil {
		return err
	}
	defer s.cleanupRuntime(context.Background())

	s.deps.Logger.Info("daemon listening", "socket", socketPath, "pid", os.Getpid())
	err := s.deps.Server.Serve(runCtx, socketPath, &localHandler{svc: s})
	if err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve daemon: %w", err)
	}
	s.deps.Logger.Info("daemon stopped")
	return nil
}

// Start launches `<executable> args...` detached and waits for its socket.
func (s *DaemonService) Start(ctx context.Context, args []string) error {
	if err := s.cleanupStaleArtifacts(ctx); err != nil {
		return err
	}
	if s.Running(ctx) {
		return nil
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.deps.Store.LogPath()), 0o755); err != nil {
		return fmt.Errorf("create daemon log dir: %w", err)
	}
	logFile, err := os.OpenFile(s.deps.Store.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open daemon log: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(execPath, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}
	_ = cmd.Process.Release()

	if err := waitForSocket(s.deps.Store.SocketPath(), daemonStartTimeout); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}
	return nil
}

func (s *DaemonService) StopDaemon(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancelRun
	s.mu.Unlock()
	if cancel != nil {
		cancel()
		return nil
	}

	pid, err := s.deps.Store.ReadPID(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_ = os.Remove(s.deps.Store.SocketPath())
			return apperrors.ErrDaemonNotRunning
		}
		return err
	}
	if !processAlive(pid) {
		s.cleanupRuntime(ctx)
		return apperrors.ErrDaemonNotRunning
	}

	if err := s.deps.Client.Stop(ctx, s.deps.Store.SocketPath()); err != nil {
		s.deps.Logger.Warn("daemon stop request failed, signalling", "pid", pid, "error", err)
		if err := syscall.Kill(pid, syscall.SIGTERM); err != nil && !errors.Is(err, syscall.ESRCH) {
			return fmt.Errorf("stop daemon pid=%d: %w", pid, err)
		}
	}
	deadline := time.Now().Add(daemonStopTimeout)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if processAlive(pid) {
		_ = syscall.Kill(pid, syscall.SIGKILL)
		s.cleanupRuntime(ctx)
	}
	return nil
}

func (s *DaemonService) Running(ctx context.Context) bool {
	pid, err := s.deps.Store.ReadPID(ctx)
	if err != nil || !processAlive(pid) {
		return false
	}
	return socketReachable(s.deps.Store.SocketPath())
}

func (s *DaemonService) RuntimeStatus(ctx context.Context) (dto.RuntimeStatus, error) {
	out := dto.RuntimeStatus{SocketPath: s.deps.Store.SocketPath()}
	pid, err := s.deps.Store.ReadPID(ctx)
	if err == nil {
		out.PID = pid
		out.Running = processAlive(pid)
	}
	if out.Running {
		status, statusErr := s.deps.Client.Status(ctx, s.deps.Store.SocketPath())
		if statusErr == nil {
			out.Status = &status
		}
	}
	return out, nil
}

func (s *DaemonService) Open(ctx context.Context, rawURL string) (commanddto.Result, error) {
	return s.deps.Client.Open(ctx, s.deps.Store.SocketPath(), rawURL)
}

func (s *DaemonService) Timer(ctx context.Context, req dto.TimerRequest) (timerdto.StateOutput, error) {
	return s.deps.Client.Timer(ctx, s.deps.Store.SocketPath(), req)
}

func (s *DaemonService) Goals(ctx context.Context, req dto.GoalsRequest) (subgoaldto.ListOutput, error) {
	return s.deps.Client.Goals(ctx, s.deps.Store.SocketPath(), req)
}

func (s *DaemonService) cleanupRuntime(ctx context.Context) {
	if err := s.deps.Store.ClearPID(ctx); err != nil {
		s.deps.Logger.Warn("clear daemon pid failed", "error", err)
	}
	if err := os.Remove(s.deps.Store.SocketPath()); err != nil && !os.IsNotExist(err) {
		s.deps.Logger.Warn("remove daemon socket failed", "error", err)
	}
}

func (s *DaemonService) cleanupStaleArtifacts(ctx context.Context) error {
	pid, err := s.deps.Store.ReadPID(ctx)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	} else if !processAlive(pid) {
		s.deps.Logger.Debug("removing stale daemon pid", "pid", pid)
		s.cleanupRuntime(ctx)
	}

	socketPath := s.deps.Store.SocketPath()
	if _, statErr := os.Stat(socketPath); statErr == nil && !socketReachable(socketPath) {
		if removeErr := os.Remove(socketPath); removeErr != nil && !os.IsNotExist(removeErr) {
			return fmt.Errorf("remove stale daemon socket: %w", removeErr)
		}
	}
	return nil
}

func (s *DaemonService) stopRun() {
	s.mu.Lock()
	cancel := s.cancelRun
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func waitForSocket(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if socketReachable(path) {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("daemon socket not ready: %s", path)
}

func socketReachable(path string) bool {
	conn, err := net.DialTimeout("unix", path, 150*time.Millisecond)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}
