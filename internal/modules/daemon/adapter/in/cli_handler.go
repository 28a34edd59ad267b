package in

import (
	"context"

	commanddto "sprintbell/internal/modules/command/dto"
	"sprintbell/internal/modules/daemon/dto"
	daemonin "sprintbell/internal/modules/daemon/port/in"
	subgoaldto "sprintbell/internal/modules/subgoal/dto"
	timerdto "sprintbell/internal/modules/timer/dto"
)

// CLIHandler forwards commands to the background daemon.
type CLIHandler struct {
	usecase daemonin.Usecase
}

func NewCLIHandler(usecase daemonin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Run(ctx context.Context) error {
	return h.usecase.Run(ctx)
}

func (h CLIHandler) Start(ctx context.Context, args []string) error {
	return h.usecase.Start(ctx, args)
}

func (h CLIHandler) Stop(ctx context.Context) error {
	return h.usecase.StopDaemon(ctx)
}

func (h CLIHandler) Running(ctx context.Context) bool {
	return h.usecase.Running(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.RuntimeStatus, error) {
	return h.usecase.RuntimeStatus(ctx)
}

func (h CLIHandler) Open(ctx context.Context, rawURL string) (commanddto.Result, error) {
	return h.usecase.Open(ctx, rawURL)
}

func (h CLIHandler) Timer(ctx context.Context, req dto.TimerRequest) (timerdto.StateOutput, error) {
	return h.usecase.Timer(ctx, req)
}

func (h CLIHandler) Goals(ctx context.Context, action, arg string) (subgoaldto.ListOutput, error) {
	return h.usecase.Goals(ctx, dto.GoalsRequest{Action: action, Arg: arg})
}
