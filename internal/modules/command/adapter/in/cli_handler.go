package in

import (
	"context"

	"sprintbell/internal/modules/command/dto"
	commandin "sprintbell/internal/modules/command/port/in"
)

type CLIHandler struct {
	usecase commandin.Usecase
}

func NewCLIHandler(usecase commandin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Open(ctx context.Context, rawURL string) (dto.Result, error) {
	return h.usecase.Open(ctx, rawURL)
}

func (h CLIHandler) VSCode(ctx context.Context, opener []string, modifier string) (dto.IntegrationOutput, error) {
	return h.usecase.VSCode(ctx, dto.IntegrationInput{Opener: opener, Modifier: modifier})
}
