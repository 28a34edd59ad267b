package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	daemonout "sprintbell/internal/modules/daemon/port/out"
	apperrors "sprintbell/internal/platform/errors"
)

// FileDaemonStore tracks the SprintBell daemon through files in its run dir:
// the pid file, the unix socket and the detached process log.
type FileDaemonStore struct {
	pidPath    string
	socketPath string
	logPath    string
}

func NewFileDaemonStore(pidPath, socketPath, logPath string) daemonout.DaemonStore {
	return &FileDaemonStore{pidPath: pidPath, socketPath: socketPath, logPath: logPath}
}

// WritePID replaces the pid file via rename so a CLI polling during autostart
// never reads a partial pid.
func (s *FileDaemonStore) WritePID(_ context.Context, pid int) error {
	if pid <= 0 {
		return fmt.Errorf("daemon pid %d: %w", pid, apperrors.ErrInvalidInput)
	}
	dir := filepath.Dir(s.pidPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create daemon run dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".daemon-pid-*")
	if err != nil {
		return fmt.Errorf("create daemon pid: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(strconv.Itoa(pid) + "\n"); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write daemon pid: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write daemon pid: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.pidPath); err != nil {
		return fmt.Errorf("install daemon pid: %w", err)
	}
	return nil
}

// ReadPID returns os.ErrNotExist (wrapped) when no daemon has written a pid.
func (s *FileDaemonStore) ReadPID(_ context.Context) (int, error) {
	raw, err := os.ReadFile(s.pidPath)
	if err != nil {
		return 0, fmt.Errorf("read daemon pid: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("daemon pid file %s holds %q: %w", s.pidPath, strings.TrimSpace(string(raw)), apperrors.ErrInvalidInput)
	}
	return pid, nil
}

func (s *FileDaemonStore) ClearPID(_ context.Context) error {
	if err := os.Remove(s.pidPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove daemon pid: %w", err)
	}
	return nil
}

func (s *FileDaemonStore) SocketPath() string { return s.socketPath }

func (s *FileDaemonStore) LogPath() string { return s.logPath }
