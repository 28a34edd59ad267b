package out

import (
	"context"
	"time"

	"sprintbell/internal/modules/timer/domain"
)

type SnapshotStore interface {
	// Load returns apperrors.ErrNoSnapshot when nothing is stored.
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
	Clear(ctx context.Context) error
}

type PreferenceStore interface {
	Defaults(ctx context.Context) (durationSeconds int, title string, err error)
	Remember(ctx context.Context, durationSeconds int, title string) error
}

type GoalBoard interface {
	Summary(ctx context.Context) (completed, pending []string, err error)
	ResetForNewSession(ctx context.Context, keepCompleted bool) error
}

type SessionRecorder interface {
	Record(ctx context.Context, result domain.SessionResult)
}

type Sound interface {
	PlayCompletion(ctx context.Context)
}

type Notifier interface {
	RequestPermission(ctx context.Context) bool
	NotifyCompletion(ctx context.Context, summary domain.CompletionSummary) error
	IsEnabled(ctx context.Context) bool
}

// Scheduler runs fn every interval until the returned cancel func is called.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}
