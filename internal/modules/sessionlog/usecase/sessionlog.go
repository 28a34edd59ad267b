package usecase

import (
	"context"
	"time"

	"sprintbell/internal/modules/sessionlog/domain"
	"sprintbell/internal/modules/sessionlog/dto"
	sessionlogin "sprintbell/internal/modules/sessionlog/port/in"
	"sprintbell/internal/modules/sessionlog/service"
)

type Interactor struct {
	svc *service.SessionLogService
}

func NewInteractor(svc *service.SessionLogService) sessionlogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) LogSession(ctx context.Context, input dto.LogInput) dto.RecordOutput {
	record := i.svc.Log(ctx, domain.RecordParams{
		Title:                  input.Title,
		PlannedDurationSeconds: input.PlannedDurationSeconds,
		ActualDurationSeconds:  input.ActualDurationSeconds,
		StartTime:              input.StartTime,
		EndTime:                input.EndTime,
		WasCompleted:           input.WasCompleted,
		WasInterrupted:         input.WasInterrupted,
		CompletedSubGoalTexts:  input.CompletedGoals,
		PendingSubGoalTexts:    input.PendingGoals,
	})
	return toRecordOutput(record)
}

func (i *Interactor) Files(ctx context.Context) []dto.FileOutput {
	files := i.svc.Files(ctx)
	out := make([]dto.FileOutput, 0, len(files))
	for _, f := range files {
		out = append(out, dto.FileOutput{Path: f.Path, Name: f.Name, Size: f.Size, ModTime: f.ModTime})
	}
	return out
}

func (i *Interactor) CurrentLogFilePath() string {
	return i.svc.CurrentPath()
}

func (i *Interactor) Recent(ctx context.Context, limit int) ([]dto.RecordOutput, error) {
	records, err := i.svc.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordOutput(r))
	}
	return out, nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	stats, err := i.svc.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		Sessions:             stats.Sessions,
		Completed:            stats.Completed,
		Interrupted:          stats.Interrupted,
		FocusedSeconds:       stats.FocusedSeconds,
		AverageCompletion:    stats.AverageCompletion,
		AverageEffectiveness: stats.AverageEffectiveness,
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context) (int, error) {
	return i.svc.Reindex(ctx)
}

func (i *Interactor) Report(ctx context.Context, day time.Time) (string, error) {
	return i.svc.Report(ctx, day)
}

func (i *Interactor) WriteReport(ctx context.Context, day time.Time, dir string) (string, error) {
	return i.svc.WriteReport(ctx, day, dir)
}

func toRecordOutput(r domain.SessionRecord) dto.RecordOutput {
	return dto.RecordOutput{
		SessionID:              r.SessionID,
		Title:                  r.Title,
		Outcome:                r.Outcome(),
		PlannedDurationSeconds: r.PlannedDurationSeconds,
		ActualDurationSeconds:  r.ActualDurationSeconds,
		FormattedDuration:      r.FormattedDuration(),
		StartTime:              r.StartTime,
		EndTime:                r.EndTime,
		LoggedAt:               r.LoggedAt,
		CompletionPercentage:   r.CompletionPercentage,
		SubGoalCompletionRate:  r.SubGoalCompletionRate,
		EffectivenessScore:     r.EffectivenessScore(),
		CompletedSubGoals:      r.CompletedSubGoals,
		TotalSubGoals:          r.TotalSubGoals,
		CompletedSubGoalTexts:  r.CompletedSubGoalTexts,
		PendingSubGoalTexts:    r.PendingSubGoalTexts,
	}
}
