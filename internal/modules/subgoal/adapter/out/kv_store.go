package out

import (
	"context"
	"encoding/json"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"sprintbell/internal/modules/subgoal/domain"
	subgoalout "sprintbell/internal/modules/subgoal/port/out"
	"sprintbell/internal/platform/id"
	"sprintbell/internal/platform/kv"
)

// KVSubGoalStore keeps the whole list as one JSON array under a single key.
type KVSubGoalStore struct {
	store  kv.Store
	ids    id.Generator
	logger hclog.Logger
}

func NewKVSubGoalStore(store kv.Store, ids id.Generator, logger hclog.Logger) subgoalout.Store {
	return &KVSubGoalStore{store: store, ids: ids, logger: logger}
}

// Load treats an undecodable blob as an empty list. Entries written without an id get a fresh one.
func (s *KVSubGoalStore) Load(ctx context.Context) (domain.List, error) {
	raw, ok, err := s.store.Get(ctx, kv.KeySubGoals)
	if err != nil {
		return nil, fmt.Errorf("load sub-goals: %w", err)
	}
	if !ok {
		return domain.List{}, nil
	}
	goals := domain.List{}
	if err := json.Unmarshal([]byte(raw), &goals); err != nil {
		s.logger.Warn("sub-goal data is corrupted, using empty list", "error", err)
		return domain.List{}, nil
	}
	for i := range goals {
		if goals[i].ID == "" {
			goals[i].ID = s.ids.New()
		}
	}
	return goals, nil
}

func (s *KVSubGoalStore) Save(ctx context.Context, goals domain.List) error {
	if goals == nil {
		goals = domain.List{}
	}
	if err := kv.SetJSON(ctx, s.store, kv.KeySubGoals, goals); err != nil {
		return fmt.Errorf("save sub-goals: %w", err)
	}
	return nil
}
