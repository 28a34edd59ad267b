package in

import (
	"context"
	"time"

	"sprintbell/internal/modules/sessionlog/dto"
)

type Usecase interface {
	// LogSession never fails; write errors are logged by the implementation.
	LogSession(ctx context.Context, input dto.LogInput) dto.RecordOutput
	Files(ctx context.Context) []dto.FileOutput
	CurrentLogFilePath() string
	Recent(ctx context.Context, limit int) ([]dto.RecordOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Reindex(ctx context.Context) (int, error)
	Report(ctx context.Context, day time.Time) (string, error)
	WriteReport(ctx context.Context, day time.Time, dir string) (string, error)
}
