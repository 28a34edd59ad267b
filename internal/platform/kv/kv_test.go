package kv_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	apperrors "sprintbell/internal/platform/errors"
	"sprintbell/internal/platform/kv"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func stores(t *testing.T) map[string]kv.Store {
	t.Helper()
	sqlite, err := kv.NewSQLiteStore(filepath.Join(t.TempDir(), "db", "sprintbell.db"), fixedClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]kv.Store{
		"memory": kv.NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreRoundTripsTypedValues(t *testing.T) {
	t.Parallel()
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			saved := time.Date(2026, 3, 1, 9, 30, 15, 500, time.FixedZone("CET", 3600))
			if err := kv.SetInt(ctx, store, "SprintBell.timer.remainingSeconds", 1490); err != nil {
				t.Fatalf("set int: %v", err)
			}
			if err := kv.SetBool(ctx, store, "SprintBell.timer.isRunning", true); err != nil {
				t.Fatalf("set bool: %v", err)
			}
			if err := kv.SetString(ctx, store, "SprintBell.timer.mainTitle", "Write \"docs\""); err != nil {
				t.Fatalf("set string: %v", err)
			}
			if err := kv.SetTime(ctx, store, "SprintBell.timer.lastSaved", saved); err != nil {
				t.Fatalf("set time: %v", err)
			}

			remaining, ok, err := kv.GetInt(ctx, store, "SprintBell.timer.remainingSeconds")
			if err != nil || !ok || remaining != 1490 {
				t.Fatalf("get int = %d %v %v", remaining, ok, err)
			}
			running, ok, err := kv.GetBool(ctx, store, "SprintBell.timer.isRunning")
			if err != nil || !ok || !running {
				t.Fatalf("get bool = %v %v %v", running, ok, err)
			}
			title, ok, err := kv.GetString(ctx, store, "SprintBell.timer.mainTitle")
			if err != nil || !ok || title != "Write \"docs\"" {
				t.Fatalf("get string = %q %v %v", title, ok, err)
			}
			at, ok, err := kv.GetTime(ctx, store, "SprintBell.timer.lastSaved")
			if err != nil || !ok || !at.Equal(saved) {
				t.Fatalf("get time = %s %v %v", at, ok, err)
			}

			_, ok, err = kv.GetInt(ctx, store, "SprintBell.timer.totalDuration")
			if err != nil || ok {
				t.Fatalf("missing key must report absent, got ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestStoreBatchOperationsAndPrefixKeys(t *testing.T) {
	t.Parallel()
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			err := store.SetMany(ctx, map[string]string{
				"SprintBell.timer.remainingSeconds":   "10",
				"SprintBell.timer.mainTitle":          `"Deep work"`,
				"SprintBell.preferences.soundEnabled": "false",
			})
			if err != nil {
				t.Fatalf("set many: %v", err)
			}
			keys, err := store.Keys(ctx, "SprintBell.timer.")
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			want := []string{"SprintBell.timer.mainTitle", "SprintBell.timer.remainingSeconds"}
			if !reflect.DeepEqual(keys, want) {
				t.Fatalf("unexpected keys: %v", keys)
			}

			if err := store.RemoveMany(ctx, want...); err != nil {
				t.Fatalf("remove many: %v", err)
			}
			if ok, _ := store.Has(ctx, "SprintBell.timer.mainTitle"); ok {
				t.Fatalf("title key must be removed")
			}
			if ok, _ := store.Has(ctx, "SprintBell.preferences.soundEnabled"); !ok {
				t.Fatalf("unrelated key must survive")
			}
			if err := store.Remove(ctx, "SprintBell.preferences.soundEnabled"); err != nil {
				t.Fatalf("remove: %v", err)
			}
			keys, _ = store.Keys(ctx, kv.Namespace)
			if len(keys) != 0 {
				t.Fatalf("expected empty store, got %v", keys)
			}
		})
	}
}

func TestGetReportsCorruptValues(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	ctx := context.Background()
	_ = store.Set(ctx, "SprintBell.timer.remainingSeconds", "not-json")
	if _, ok, err := kv.GetInt(ctx, store, "SprintBell.timer.remainingSeconds"); !ok || !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for corrupt value, got ok=%v err=%v", ok, err)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sprintbell.db")
	ctx := context.Background()
	first, err := kv.NewSQLiteStore(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := kv.SetInt(ctx, first, "SprintBell.preferences.defaultDuration", 900); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := kv.NewSQLiteStore(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	v, ok, err := kv.GetInt(ctx, second, "SprintBell.preferences.defaultDuration")
	if err != nil || !ok || v != 900 {
		t.Fatalf("expected persisted 900, got %d %v %v", v, ok, err)
	}
}
