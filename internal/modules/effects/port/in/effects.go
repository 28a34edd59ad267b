package in

import (
	"context"

	"sprintbell/internal/modules/effects/dto"
)

type Usecase interface {
	RequestPermission(ctx context.Context) bool
	IsEnabled(ctx context.Context) bool
	NotifyCompletion(ctx context.Context, input dto.CompletionInput) error
	PlayCompletion(ctx context.Context)
	Backends(ctx context.Context) []dto.BackendOutput
	TestNotification(ctx context.Context) (dto.DeliveryOutput, error)
}
