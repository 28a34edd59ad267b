package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"sprintbell/internal/modules/subgoal/domain"
	subgoalout "sprintbell/internal/modules/subgoal/port/out"
	"sprintbell/internal/platform/clock"
	apperrors "sprintbell/internal/platform/errors"
	"sprintbell/internal/platform/id"
)

// SubGoalService owns the in-memory list and writes it through to the store
// after every mutation. Write failures are logged; the in-memory list stays authoritative.
type SubGoalService struct {
	mu     sync.Mutex
	goals  domain.List
	loaded bool

	store  subgoalout.Store
	clock  clock.Clock
	ids    id.Generator
	logger hclog.Logger
}

func NewSubGoalService(store subgoalout.Store, clock clock.Clock, ids id.Generator, logger hclog.Logger) *SubGoalService {
	return &SubGoalService{store: store, clock: clock, ids: ids, logger: logger}
}

func (s *SubGoalService) List(ctx context.Context) (domain.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s.goals.Clone(), nil
}

func (s *SubGoalService) Add(ctx context.Context, text string) (domain.SubGoal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.SubGoal{}, fmt.Errorf("sub-goal text is required: %w", apperrors.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return domain.SubGoal{}, err
	}
	goal := domain.SubGoal{ID: s.ids.New(), Text: text, CreatedAt: s.clock.Now()}
	s.goals = append(s.goals, goal)
	s.persist(ctx)
	s.logger.Debug("added sub-goal", "id", goal.ID, "text", goal.Text)
	return goal, nil
}

func (s *SubGoalService) Toggle(ctx context.Context, ref string) (domain.SubGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return domain.SubGoal{}, err
	}
	idx, ok := s.goals.Index(ref)
	if !ok {
		return domain.SubGoal{}, fmt.Errorf("sub-goal %q: %w", ref, apperrors.ErrNotFound)
	}
	s.goals[idx].IsCompleted = !s.goals[idx].IsCompleted
	s.persist(ctx)
	return s.goals[idx], nil
}

// Delete is a no-op for an unknown reference.
func (s *SubGoalService) Delete(ctx context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return err
	}
	idx, ok := s.goals.Index(ref)
	if !ok {
		return nil
	}
	s.goals = append(s.goals[:idx], s.goals[idx+1:]...)
	s.persist(ctx)
	return nil
}

func (s *SubGoalService) ClearAll(ctx context.Context) error {
	return s.mutate(ctx, func(domain.List) domain.List { return domain.List{} })
}

// Replace swaps the list for fresh pending goals built from texts; blank entries are skipped.
func (s *SubGoalService) Replace(ctx context.Context, texts []string) (domain.List, error) {
	now := s.clock.Now()
	var out domain.List
	err := s.mutate(ctx, func(domain.List) domain.List {
		next := domain.List{}
		for _, text := range texts {
			if text = strings.TrimSpace(text); text != "" {
				next = append(next, domain.SubGoal{ID: s.ids.New(), Text: text, CreatedAt: now})
			}
		}
		out = next.Clone()
		return next
	})
	return out, err
}

// ResetForNewSession empties the list, or keeps only completed goals when keepCompleted is set.
func (s *SubGoalService) ResetForNewSession(ctx context.Context, keepCompleted bool) error {
	return s.mutate(ctx, func(goals domain.List) domain.List {
		next := domain.List{}
		if keepCompleted {
			for _, g := range goals {
				if g.IsCompleted {
					next = append(next, g)
				}
			}
		}
		return next
	})
}

func (s *SubGoalService) MarkAllCompleted(ctx context.Context) error {
	return s.mutate(ctx, func(goals domain.List) domain.List {
		for i := range goals {
			goals[i].IsCompleted = true
		}
		return goals
	})
}

func (s *SubGoalService) mutate(ctx context.Context, fn func(domain.List) domain.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return err
	}
	s.goals = fn(s.goals)
	s.persist(ctx)
	return nil
}

func (s *SubGoalService) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	goals, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.goals = goals
	s.loaded = true
	return nil
}

func (s *SubGoalService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.goals); err != nil {
		s.logger.Warn("persist sub-goals failed", "count", len(s.goals), "error", err)
	}
}
