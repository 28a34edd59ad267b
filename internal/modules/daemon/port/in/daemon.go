package in

import (
	"context"

	commanddto "sprintbell/internal/modules/command/dto"
	"sprintbell/internal/modules/daemon/dto"
	subgoaldto "sprintbell/internal/modules/subgoal/dto"
	timerdto "sprintbell/internal/modules/timer/dto"
)

type Usecase interface {
	// Run serves the socket until ctx is cancelled or a Stop request arrives.
	Run(ctx context.Context) error
	Start(ctx context.Context, args []string) error
	StopDaemon(ctx context.Context) error
	Running(ctx context.Context) bool
	RuntimeStatus(ctx context.Context) (dto.RuntimeStatus, error)

	Open(ctx context.Context, rawURL string) (commanddto.Result, error)
	Timer(ctx context.Context, req dto.TimerRequest) (timerdto.StateOutput, error)
	Goals(ctx context.Context, req dto.GoalsRequest) (subgoaldto.ListOutput, error)
}
