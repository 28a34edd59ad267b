package usecase

import (
	"context"

	"sprintbell/internal/modules/effects/dto"
	effectsin "sprintbell/internal/modules/effects/port/in"
	"sprintbell/internal/modules/effects/service"
)

type Interactor struct {
	svc *service.EffectsService
}

func NewInteractor(svc *service.EffectsService) effectsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) RequestPermission(ctx context.Context) bool {
	return i.svc.RequestPermission(ctx)
}

func (i *Interactor) IsEnabled(ctx context.Context) bool {
	return i.svc.IsEnabled(ctx)
}

func (i *Interactor) NotifyCompletion(ctx context.Context, input dto.CompletionInput) error {
	return i.svc.NotifyCompletion(ctx, input)
}

func (i *Interactor) PlayCompletion(ctx context.Context) {
	i.svc.PlayCompletion(ctx)
}

func (i *Interactor) Backends(ctx context.Context) []dto.BackendOutput {
	return i.svc.Backends(ctx)
}

func (i *Interactor) TestNotification(ctx context.Context) (dto.DeliveryOutput, error) {
	return i.svc.TestNotification(ctx)
}
