package in

import (
	"context"

	timerdto "sprintbell/internal/modules/timer/dto"
	timerin "sprintbell/internal/modules/timer/port/in"
)

// CLIHandler serves timer commands inside the process that owns the countdown.
type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) timerdto.StateOutput {
	return h.usecase.State(ctx)
}

func (h CLIHandler) Start(ctx context.Context) timerdto.StateOutput {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) timerdto.StateOutput {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) timerdto.StateOutput {
	return h.usecase.Toggle(ctx)
}

func (h CLIHandler) Reset(ctx context.Context, minutes int, title string) (timerdto.StateOutput, error) {
	return h.usecase.Reset(ctx, timerdto.ResetInput{DurationSeconds: minutes * 60, Title: title})
}

func (h CLIHandler) NewSession(ctx context.Context, input timerdto.NewSessionInput) (timerdto.StateOutput, error) {
	return h.usecase.NewSession(ctx, input)
}

func (h CLIHandler) Save(ctx context.Context) {
	h.usecase.ForceSave(ctx)
}
