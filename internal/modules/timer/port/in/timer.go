package in

import (
	"context"

	"sprintbell/internal/modules/timer/dto"
)

type Usecase interface {
	State(ctx context.Context) dto.StateOutput
	Start(ctx context.Context) dto.StateOutput
	Stop(ctx context.Context) dto.StateOutput
	Toggle(ctx context.Context) dto.StateOutput
	Reset(ctx context.Context, input dto.ResetInput) (dto.StateOutput, error)
	NewSession(ctx context.Context, input dto.NewSessionInput) (dto.StateOutput, error)
	ForceSave(ctx context.Context)
	Subscribe(buffer int) (<-chan dto.EventOutput, func())
}
