package in

import (
	"context"
	"time"

	sessionlogdto "sprintbell/internal/modules/sessionlog/dto"
	sessionlogin "sprintbell/internal/modules/sessionlog/port/in"
)

type CLIHandler struct {
	usecase sessionlogin.Usecase
}

func NewCLIHandler(usecase sessionlogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Files(ctx context.Context) ([]sessionlogdto.FileOutput, string) {
	return h.usecase.Files(ctx), h.usecase.CurrentLogFilePath()
}

func (h CLIHandler) Tail(ctx context.Context, limit int) ([]sessionlogdto.RecordOutput, error) {
	return h.usecase.Recent(ctx, limit)
}

func (h CLIHandler) Stats(ctx context.Context) (sessionlogdto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (int, error) {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Report(ctx context.Context, day time.Time, dir string) (string, error) {
	if dir == "" {
		return h.usecase.Report(ctx, day)
	}
	return h.usecase.WriteReport(ctx, day, dir)
}
