package usecase

import (
	"context"

	commanddto "sprintbell/internal/modules/command/dto"
	"sprintbell/internal/modules/daemon/dto"
	daemonin "sprintbell/internal/modules/daemon/port/in"
	"sprintbell/internal/modules/daemon/service"
	subgoaldto "sprintbell/internal/modules/subgoal/dto"
	timerdto "sprintbell/internal/modules/timer/dto"
)

type Interactor struct {
	svc *service.DaemonService
}

func NewInteractor(svc *service.DaemonService) daemonin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Run(ctx context.Context) error {
	return i.svc.Run(ctx)
}

func (i *Interactor) Start(ctx context.Context, args []string) error {
	return i.svc.Start(ctx, args)
}

func (i *Interactor) StopDaemon(ctx context.Context) error {
	return i.svc.StopDaemon(ctx)
}

func (i *Interactor) Running(ctx context.Context) bool {
	return i.svc.Running(ctx)
}

func (i *Interactor) RuntimeStatus(ctx context.Context) (dto.RuntimeStatus, error) {
	return i.svc.RuntimeStatus(ctx)
}

func (i *Interactor) Open(ctx context.Context, rawURL string) (commanddto.Result, error) {
	return i.svc.Open(ctx, rawURL)
}

func (i *Interactor) Timer(ctx context.Context, req dto.TimerRequest) (timerdto.StateOutput, error) {
	return i.svc.Timer(ctx, req)
}

func (i *Interactor) Goals(ctx context.Context, req dto.GoalsRequest) (subgoaldto.ListOutput, error) {
	return i.svc.Goals(ctx, req)
}
