package usecase

import (
	"context"

	"sprintbell/internal/modules/command/dto"
	commandin "sprintbell/internal/modules/command/port/in"
	"sprintbell/internal/modules/command/service"
)

type Interactor struct {
	svc *service.Dispatcher
}

func NewInteractor(svc *service.Dispatcher) commandin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Open(ctx context.Context, rawURL string) (dto.Result, error) {
	return i.svc.Open(ctx, rawURL)
}

func (i *Interactor) VSCode(_ context.Context, input dto.IntegrationInput) (dto.IntegrationOutput, error) {
	return i.svc.VSCode(input)
}
