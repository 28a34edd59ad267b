package out

import (
	"context"

	"sprintbell/internal/modules/effects/domain"
)

// Backend delivers notifications. Available returns nil when Deliver may be attempted.
type Backend interface {
	Name() string
	Available(ctx context.Context) error
	Deliver(ctx context.Context, notification domain.Notification) error
}

type Player interface {
	Name() string
	Play(ctx context.Context) error
}

type SettingsSource interface {
	Settings(ctx context.Context) (domain.Settings, error)
}
