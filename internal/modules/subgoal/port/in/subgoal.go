package in

import (
	"context"

	"sprintbell/internal/modules/subgoal/dto"
)

type Usecase interface {
	List(ctx context.Context) (dto.ListOutput, error)
	Add(ctx context.Context, text string) (dto.GoalOutput, error)
	Toggle(ctx context.Context, ref string) (dto.GoalOutput, error)
	Delete(ctx context.Context, ref string) error
	ClearAll(ctx context.Context) error
	Replace(ctx context.Context, texts []string) (dto.ListOutput, error)
	ResetForNewSession(ctx context.Context, keepCompleted bool) error
	MarkAllCompleted(ctx context.Context) error
	Summary(ctx context.Context) (dto.SummaryOutput, error)
}
