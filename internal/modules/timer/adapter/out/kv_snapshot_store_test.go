package out_test

import (
	"context"
	"errors"
	"testing"
	"time"

	timerout "sprintbell/internal/modules/timer/adapter/out"
	"sprintbell/internal/modules/timer/domain"
	apperrors "sprintbell/internal/platform/errors"
	"sprintbell/internal/platform/kv"
)

func TestSnapshotStoreRoundTripAndClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	snapshots := timerout.NewKVSnapshotStore(store)

	if _, err := snapshots.Load(ctx); !errors.Is(err, apperrors.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot on empty store, got %v", err)
	}

	saved := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	want := domain.Snapshot{RemainingSeconds: 420, TotalDurationSeconds: 1500, Title: "Deep Work", IsRunning: true, LastSavedAt: saved}
	if err := snapshots.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := snapshots.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.RemainingSeconds != 420 || got.TotalDurationSeconds != 1500 || got.Title != "Deep Work" || !got.IsRunning || !got.LastSavedAt.Equal(saved) {
		t.Fatalf("unexpected snapshot: %+v", got)
	}

	if err := snapshots.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	keys, _ := store.Keys(ctx, kv.Namespace+"timer.")
	if len(keys) != 0 {
		t.Fatalf("clear left keys behind: %v", keys)
	}
}

func TestSnapshotStoreRejectsHalfWrittenSnapshots(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	snapshots := timerout.NewKVSnapshotStore(store)

	_ = kv.SetInt(ctx, store, kv.KeyTimerRemaining, 90)
	if _, err := snapshots.Load(ctx); !errors.Is(err, apperrors.ErrInconsistentSnapshot) {
		t.Fatalf("remaining without title must be inconsistent, got %v", err)
	}

	_ = store.Set(ctx, kv.KeyTimerTitle, "not json")
	if _, err := snapshots.Load(ctx); !errors.Is(err, apperrors.ErrInconsistentSnapshot) {
		t.Fatalf("corrupt title must be inconsistent, got %v", err)
	}
}

func TestSnapshotStoreDefaultsOptionalKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	_ = kv.SetInt(ctx, store, kv.KeyTimerRemaining, 90)
	_ = kv.SetString(ctx, store, kv.KeyTimerTitle, "Legacy")

	got, err := timerout.NewKVSnapshotStore(store).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TotalDurationSeconds != 90 || got.IsRunning || !got.LastSavedAt.IsZero() {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}
