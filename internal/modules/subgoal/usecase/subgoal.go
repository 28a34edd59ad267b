package usecase

import (
	"context"

	"sprintbell/internal/modules/subgoal/domain"
	"sprintbell/internal/modules/subgoal/dto"
	subgoalin "sprintbell/internal/modules/subgoal/port/in"
	"sprintbell/internal/modules/subgoal/service"
)

type Interactor struct {
	svc *service.SubGoalService
}

func NewInteractor(svc *service.SubGoalService) subgoalin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) (dto.ListOutput, error) {
	goals, err := i.svc.List(ctx)
	if err != nil {
		return dto.ListOutput{}, err
	}
	return toListOutput(goals), nil
}

func (i *Interactor) Add(ctx context.Context, text string) (dto.GoalOutput, error) {
	goal, err := i.svc.Add(ctx, text)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) Toggle(ctx context.Context, ref string) (dto.GoalOutput, error) {
	goal, err := i.svc.Toggle(ctx, ref)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) Delete(ctx context.Context, ref string) error {
	return i.svc.Delete(ctx, ref)
}

func (i *Interactor) ClearAll(ctx context.Context) error {
	return i.svc.ClearAll(ctx)
}

func (i *Interactor) Replace(ctx context.Context, texts []string) (dto.ListOutput, error) {
	goals, err := i.svc.Replace(ctx, texts)
	if err != nil {
		return dto.ListOutput{}, err
	}
	return toListOutput(goals), nil
}

func (i *Interactor) ResetForNewSession(ctx context.Context, keepCompleted bool) error {
	return i.svc.ResetForNewSession(ctx, keepCompleted)
}

func (i *Interactor) MarkAllCompleted(ctx context.Context) error {
	return i.svc.MarkAllCompleted(ctx)
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	goals, err := i.svc.List(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	summary := goals.Summary()
	return dto.SummaryOutput{Completed: summary.Completed, Pending: summary.Pending}, nil
}

func toListOutput(goals domain.List) dto.ListOutput {
	out := dto.ListOutput{
		Goals:        make([]dto.GoalOutput, 0, len(goals)),
		Completed:    goals.CompletedCount(),
		Total:        goals.TotalCount(),
		Progress:     goals.ProgressFraction(),
		AllCompleted: goals.AllCompleted(),
	}
	for _, g := range goals {
		out.Goals = append(out.Goals, toGoalOutput(g))
	}
	return out
}

func toGoalOutput(g domain.SubGoal) dto.GoalOutput {
	return dto.GoalOutput{ID: g.ID, Text: g.Text, IsCompleted: g.IsCompleted, CreatedAt: g.CreatedAt}
}
