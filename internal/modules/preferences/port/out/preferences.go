package out

import (
	"context"

	"sprintbell/internal/modules/preferences/domain"
)

type PreferenceStore interface {
	Load(ctx context.Context) (domain.Preferences, error)
	Apply(ctx context.Context, patch domain.Patch) error
	MarkLaunched(ctx context.Context, version string) error
}

// DataStore exposes the raw persisted state checked by the start-up validation pass.
type DataStore interface {
	SubGoalsDecodable(ctx context.Context) (bool, error)
	DiscardSubGoals(ctx context.Context) error
	TimerKeyPresence(ctx context.Context) (domain.TimerKeyPresence, error)
	DiscardTimer(ctx context.Context) error
	RemoveAll(ctx context.Context) error
}
