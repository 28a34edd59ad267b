package out

import "context"

type Timer interface {
	Reset(ctx context.Context, durationSeconds int, title string) error
	Start(ctx context.Context)
	Stop(ctx context.Context)
	// Toggle reports whether the timer is running afterwards.
	Toggle(ctx context.Context) bool
}

type Goals interface {
	Replace(ctx context.Context, texts []string) error
}
