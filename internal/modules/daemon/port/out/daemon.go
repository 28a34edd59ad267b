package out

import (
	"context"

	commanddto "sprintbell/internal/modules/command/dto"
	"sprintbell/internal/modules/daemon/dto"
	subgoaldto "sprintbell/internal/modules/subgoal/dto"
	timerdto "sprintbell/internal/modules/timer/dto"
)

type DaemonStore interface {
	WritePID(ctx context.Context, pid int) error
	ReadPID(ctx context.Context) (int, error)
	ClearPID(ctx context.Context) error
	SocketPath() string
	LogPath() string
}

// IPCServer serves the daemon JSON-RPC API.
type IPCServer interface {
	Serve(ctx context.Context, socketPath string, handler IPCHandler) error
}

// IPCClient talks to a running daemon. Dial failures wrap apperrors.ErrDaemonNotRunning.
type IPCClient interface {
	Open(ctx context.Context, socketPath, rawURL string) (commanddto.Result, error)
	Status(ctx context.Context, socketPath string) (dto.StatusOutput, error)
	Timer(ctx context.Context, socketPath string, req dto.TimerRequest) (timerdto.StateOutput, error)
	Goals(ctx context.Context, socketPath string, req dto.GoalsRequest) (subgoaldto.ListOutput, error)
	Stop(ctx context.Context, socketPath string) error
}

type IPCHandler interface {
	Open(ctx context.Context, rawURL string) (commanddto.Result, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Timer(ctx context.Context, req dto.TimerRequest) (timerdto.StateOutput, error)
	Goals(ctx context.Context, req dto.GoalsRequest) (subgoaldto.ListOutput, error)
	Stop(ctx context.Context) error
}
