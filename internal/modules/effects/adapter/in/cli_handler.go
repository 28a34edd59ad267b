package in

import (
	"context"

	"sprintbell/internal/modules/effects/dto"
	effectsin "sprintbell/internal/modules/effects/port/in"
)

type CLIHandler struct {
	usecase effectsin.Usecase
}

func NewCLIHandler(usecase effectsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Backends(ctx context.Context) []dto.BackendOutput {
	return h.usecase.Backends(ctx)
}

func (h CLIHandler) TestNotify(ctx context.Context) (dto.DeliveryOutput, error) {
	return h.usecase.TestNotification(ctx)
}

func (h CLIHandler) TestSound(ctx context.Context) {
	h.usecase.PlayCompletion(ctx)
}
