package in

import (
	"context"

	prefdto "sprintbell/internal/modules/preferences/dto"
	prefin "sprintbell/internal/modules/preferences/port/in"
)

type CLIHandler struct {
	usecase prefin.Usecase
}

func NewCLIHandler(usecase prefin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (prefdto.PreferencesOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) Set(ctx context.Context, input prefdto.UpdateInput) (prefdto.PreferencesOutput, error) {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) ResetData(ctx context.Context) error {
	return h.usecase.ResetAllData(ctx)
}
