package out

import (
	"context"

	"sprintbell/internal/modules/sessionlog/domain"
)

// Journal is the append-only rotating record log.
type Journal interface {
	Append(ctx context.Context, record domain.SessionRecord) error
	Files(ctx context.Context) ([]domain.LogFile, error)
	CurrentPath() string
	// Read returns records newest first; limit <= 0 reads everything.
	Read(ctx context.Context, limit int) ([]domain.SessionRecord, error)
}

type StatsProjector interface {
	Upsert(ctx context.Context, record domain.SessionRecord) error
	Stats(ctx context.Context) (domain.Stats, error)
	Reset(ctx context.Context) error
}
