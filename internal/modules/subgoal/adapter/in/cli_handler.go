package in

import (
	"context"

	subgoaldto "sprintbell/internal/modules/subgoal/dto"
	subgoalin "sprintbell/internal/modules/subgoal/port/in"
)

type CLIHandler struct {
	usecase subgoalin.Usecase
}

func NewCLIHandler(usecase subgoalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) (subgoaldto.ListOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Add(ctx context.Context, text string) (subgoaldto.GoalOutput, error) {
	return h.usecase.Add(ctx, text)
}

func (h CLIHandler) Toggle(ctx context.Context, ref string) (subgoaldto.GoalOutput, error) {
	return h.usecase.Toggle(ctx, ref)
}

func (h CLIHandler) Delete(ctx context.Context, ref string) error {
	return h.usecase.Delete(ctx, ref)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.ClearAll(ctx)
}

func (h CLIHandler) DoneAll(ctx context.Context) error {
	return h.usecase.MarkAllCompleted(ctx)
}
