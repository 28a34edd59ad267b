package out

import (
	"context"

	"sprintbell/internal/modules/subgoal/domain"
)

type Store interface {
	Load(ctx context.Context) (domain.List, error)
	Save(ctx context.Context, goals domain.List) error
}
