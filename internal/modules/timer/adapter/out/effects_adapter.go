package out

import (
	"context"

	effectsdto "sprintbell/internal/modules/effects/dto"
	effectsin "sprintbell/internal/modules/effects/port/in"
	"sprintbell/internal/modules/timer/domain"
)

// EffectsAdapter serves both the Sound and Notifier ports.
type EffectsAdapter struct {
	usecase effectsin.Usecase
}

func NewEffectsAdapter(usecase effectsin.Usecase) *EffectsAdapter {
	return &EffectsAdapter{usecase: usecase}
}

func (a *EffectsAdapter) PlayCompletion(ctx context.Context) {
	a.usecase.PlayCompletion(ctx)
}

func (a *EffectsAdapter) RequestPermission(ctx context.Context) bool {
	return a.usecase.RequestPermission(ctx)
}

func (a *EffectsAdapter) IsEnabled(ctx context.Context) bool {
	return a.usecase.IsEnabled(ctx)
}

func (a *EffectsAdapter) NotifyCompletion(ctx context.Context, summary domain.CompletionSummary) error {
	return a.usecase.NotifyCompletion(ctx, effectsdto.CompletionInput{
		Title:                  summary.Title,
		ActualDurationSeconds:  summary.ActualDurationSeconds,
		PlannedDurationSeconds: summary.PlannedDurationSeconds,
		CompletedGoals:         summary.CompletedGoals,
		TotalGoals:             summary.TotalGoals,
	})
}
