package out

import (
	"context"
	"fmt"

	"sprintbell/internal/modules/timer/domain"
	timerout "sprintbell/internal/modules/timer/port/out"
	apperrors "sprintbell/internal/platform/errors"
	"sprintbell/internal/platform/kv"
)

// KVSnapshotStore writes the snapshot as five related keys in one batch.
type KVSnapshotStore struct {
	store kv.Store
}

func NewKVSnapshotStore(store kv.Store) timerout.SnapshotStore {
	return &KVSnapshotStore{store: store}
}

func (s *KVSnapshotStore) Load(ctx context.Context) (domain.Snapshot, error) {
	remaining, hasRemaining, err := kv.GetInt(ctx, s.store, kv.KeyTimerRemaining)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", apperrors.ErrInconsistentSnapshot, err)
	}
	title, hasTitle, err := kv.GetString(ctx, s.store, kv.KeyTimerTitle)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", apperrors.ErrInconsistentSnapshot, err)
	}
	if !hasRemaining && !hasTitle {
		return domain.Snapshot{}, apperrors.ErrNoSnapshot
	}
	if !hasRemaining || !hasTitle {
		return domain.Snapshot{}, apperrors.ErrInconsistentSnapshot
	}

	snap := domain.Snapshot{RemainingSeconds: remaining, Title: title, TotalDurationSeconds: remaining}
	if total, ok, err := kv.GetInt(ctx, s.store, kv.KeyTimerTotal); err == nil && ok {
		snap.TotalDurationSeconds = total
	}
	if running, ok, err := kv.GetBool(ctx, s.store, kv.KeyTimerRunning); err == nil && ok {
		snap.IsRunning = running
	}
	if saved, ok, err := kv.GetTime(ctx, s.store, kv.KeyTimerLastSaved); err == nil && ok {
		snap.LastSavedAt = saved
	}
	if snap.RemainingSeconds < 0 {
		return domain.Snapshot{}, apperrors.ErrInconsistentSnapshot
	}
	return snap, nil
}

func (s *KVSnapshotStore) Save(ctx context.Context, snap domain.Snapshot) error {
	values := map[string]any{
		kv.KeyTimerRemaining: snap.RemainingSeconds,
		kv.KeyTimerRunning:   snap.IsRunning,
		kv.KeyTimerTitle:     snap.Title,
		kv.KeyTimerTotal:     snap.TotalDurationSeconds,
		kv.KeyTimerLastSaved: snap.LastSavedAt,
	}
	encoded := make(map[string]string, len(values))
	for key, v := range values {
		raw, err := kv.Encode(v)
		if err != nil {
			return err
		}
		encoded[key] = raw
	}
	if err := s.store.SetMany(ctx, encoded); err != nil {
		return fmt.Errorf("save timer snapshot: %w", err)
	}
	return nil
}

func (s *KVSnapshotStore) Clear(ctx context.Context) error {
	if err := s.store.RemoveMany(ctx, kv.TimerKeys()...); err != nil {
		return fmt.Errorf("clear timer snapshot: %w", err)
	}
	return nil
}
