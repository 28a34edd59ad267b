package out

import (
	"context"

	commandout "sprintbell/internal/modules/command/port/out"
	subgoalin "sprintbell/internal/modules/subgoal/port/in"
	timerdto "sprintbell/internal/modules/timer/dto"
	timerin "sprintbell/internal/modules/timer/port/in"
)

type TimerAdapter struct {
	usecase timerin.Usecase
}

func NewTimerAdapter(usecase timerin.Usecase) commandout.Timer {
	return &TimerAdapter{usecase: usecase}
}

func (a *TimerAdapter) Reset(ctx context.Context, durationSeconds int, title string) error {
	_, err := a.usecase.Reset(ctx, timerdto.ResetInput{DurationSeconds: durationSeconds, Title: title})
	return err
}

func (a *TimerAdapter) Start(ctx context.Context) {
	a.usecase.Start(ctx)
}

func (a *TimerAdapter) Stop(ctx context.Context) {
	a.usecase.Stop(ctx)
}

func (a *TimerAdapter) Toggle(ctx context.Context) bool {
	return a.usecase.Toggle(ctx).IsRunning
}

type GoalAdapter struct {
	usecase subgoalin.Usecase
}

func NewGoalAdapter(usecase subgoalin.Usecase) commandout.Goals {
	return &GoalAdapter{usecase: usecase}
}

func (a *GoalAdapter) Replace(ctx context.Context, texts []string) error {
	_, err := a.usecase.Replace(ctx, texts)
	return err
}
