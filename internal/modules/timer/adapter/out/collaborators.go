package out

import (
	"context"

	prefdto "sprintbell/internal/modules/preferences/dto"
	prefin "sprintbell/internal/modules/preferences/port/in"
	sessionlogdto "sprintbell/internal/modules/sessionlog/dto"
	sessionlogin "sprintbell/internal/modules/sessionlog/port/in"
	subgoalin "sprintbell/internal/modules/subgoal/port/in"
	"sprintbell/internal/modules/timer/domain"
	timerout "sprintbell/internal/modules/timer/port/out"
)

type PreferenceAdapter struct {
	usecase prefin.Usecase
}

func NewPreferenceAdapter(usecase prefin.Usecase) timerout.PreferenceStore {
	return &PreferenceAdapter{usecase: usecase}
}

func (a *PreferenceAdapter) Defaults(ctx context.Context) (int, string, error) {
	prefs, err := a.usecase.Get(ctx)
	if err != nil {
		return 0, "", err
	}
	return prefs.DefaultDuration, prefs.LastUsedTitle, nil
}

// Remember skips values preferences would reject; a zero-length reset keeps the old default.
func (a *PreferenceAdapter) Remember(ctx context.Context, durationSeconds int, title string) error {
	input := prefdto.UpdateInput{}
	if durationSeconds > 0 {
		input.DefaultDuration = &durationSeconds
	}
	if title != "" {
		input.LastUsedTitle = &title
	}
	_, err := a.usecase.Update(ctx, input)
	return err
}

type GoalAdapter struct {
	usecase subgoalin.Usecase
}

func NewGoalAdapter(usecase subgoalin.Usecase) timerout.GoalBoard {
	return &GoalAdapter{usecase: usecase}
}

func (a *GoalAdapter) Summary(ctx context.Context) ([]string, []string, error) {
	summary, err := a.usecase.Summary(ctx)
	if err != nil {
		return nil, nil, err
	}
	return summary.Completed, summary.Pending, nil
}

func (a *GoalAdapter) ResetForNewSession(ctx context.Context, keepCompleted bool) error {
	return a.usecase.ResetForNewSession(ctx, keepCompleted)
}

type RecorderAdapter struct {
	usecase sessionlogin.Usecase
}

func NewRecorderAdapter(usecase sessionlogin.Usecase) timerout.SessionRecorder {
	return &RecorderAdapter{usecase: usecase}
}

func (a *RecorderAdapter) Record(ctx context.Context, result domain.SessionResult) {
	actual := result.ActualDurationSeconds
	end := result.EndTime
	a.usecase.LogSession(ctx, sessionlogdto.LogInput{
		Title:                  result.Title,
		PlannedDurationSeconds: result.PlannedDurationSeconds,
		ActualDurationSeconds:  &actual,
		StartTime:              result.StartTime,
		EndTime:                &end,
		WasCompleted:           result.WasCompleted,
		WasInterrupted:         result.WasInterrupted,
		CompletedGoals:         result.CompletedGoals,
		PendingGoals:           result.PendingGoals,
	})
}
