package out

import (
	"context"
	"encoding/json"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"sprintbell/internal/modules/preferences/domain"
	prefout "sprintbell/internal/modules/preferences/port/out"
	"sprintbell/internal/platform/kv"
)

type KVPreferenceStore struct {
	store  kv.Store
	logger hclog.Logger
}

func NewKVPreferenceStore(store kv.Store, logger hclog.Logger) prefout.PreferenceStore {
	return &KVPreferenceStore{store: store, logger: logger}
}

// Load never fails on a corrupt value: the key falls back to its default.
func (s *KVPreferenceStore) Load(ctx context.Context) (domain.Preferences, error) {
	prefs := domain.Defaults()
	if v, ok, err := kv.GetInt(ctx, s.store, kv.KeyPrefDefaultDuration); s.usable(kv.KeyPrefDefaultDuration, ok, err) {
		prefs.DefaultDuration = domain.NormalizeDuration(v)
	}
	if v, ok, err := kv.GetBool(ctx, s.store, kv.KeyPrefSoundEnabled); s.usable(kv.KeyPrefSoundEnabled, ok, err) {
		prefs.SoundEnabled = v
	}
	if v, ok, err := kv.GetString(ctx, s.store, kv.KeyPrefLastUsedTitle); s.usable(kv.KeyPrefLastUsedTitle, ok, err) && v != "" {
		prefs.LastUsedTitle = v
	}
	if v, ok, err := kv.GetBool(ctx, s.store, kv.KeyPrefNotificationsEnabled); s.usable(kv.KeyPrefNotificationsEnabled, ok, err) {
		prefs.NotificationsEnabled = v
	}
	if v, ok, err := kv.GetBool(ctx, s.store, kv.KeyPrefShowNotificationActions); s.usable(kv.KeyPrefShowNotificationActions, ok, err) {
		prefs.ShowNotificationActions = v
	}
	present, err := s.store.Has(ctx, kv.KeyAppFirstLaunch)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("load first launch flag: %w", err)
	}
	prefs.FirstLaunch = !present
	if v, ok, err := kv.GetString(ctx, s.store, kv.KeyAppVersion); s.usable(kv.KeyAppVersion, ok, err) && v != "" {
		prefs.AppVersion = v
	}
	return prefs, nil
}

func (s *KVPreferenceStore) Apply(ctx context.Context, patch domain.Patch) error {
	values := map[string]any{}
	if patch.DefaultDuration != nil {
		values[kv.KeyPrefDefaultDuration] = *patch.DefaultDuration
	}
	if patch.SoundEnabled != nil {
		values[kv.KeyPrefSoundEnabled] = *patch.SoundEnabled
	}
	if patch.LastUsedTitle != nil {
		values[kv.KeyPrefLastUsedTitle] = *patch.LastUsedTitle
	}
	if patch.NotificationsEnabled != nil {
		values[kv.KeyPrefNotificationsEnabled] = *patch.NotificationsEnabled
	}
	if patch.ShowNotificationActions != nil {
		values[kv.KeyPrefShowNotificationActions] = *patch.ShowNotificationActions
	}
	return s.setMany(ctx, values)
}

func (s *KVPreferenceStore) MarkLaunched(ctx context.Context, version string) error {
	return s.setMany(ctx, map[string]any{
		kv.KeyAppFirstLaunch: false,
		kv.KeyAppVersion:     version,
	})
}

func (s *KVPreferenceStore) setMany(ctx context.Context, values map[string]any) error {
	encoded := make(map[string]string, len(values))
	for key, v := range values {
		raw, err := kv.Encode(v)
		if err != nil {
			return err
		}
		encoded[key] = raw
	}
	if err := s.store.SetMany(ctx, encoded); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (s *KVPreferenceStore) usable(key string, ok bool, err error) bool {
	if err != nil {
		s.logger.Warn("ignoring unreadable preference", "key", key, "error", err)
		return false
	}
	return ok
}

type KVDataStore struct {
	store kv.Store
}

func NewKVDataStore(store kv.Store) prefout.DataStore {
	return &KVDataStore{store: store}
}

func (s *KVDataStore) SubGoalsDecodable(ctx context.Context) (bool, error) {
	raw, ok, err := s.store.Get(ctx, kv.KeySubGoals)
	if err != nil {
		return false, fmt.Errorf("read sub-goals: %w", err)
	}
	if !ok {
		return true, nil
	}
	var items []map[string]any
	return json.Unmarshal([]byte(raw), &items) == nil, nil
}

func (s *KVDataStore) DiscardSubGoals(ctx context.Context) error {
	if err := s.store.Remove(ctx, kv.KeySubGoals); err != nil {
		return fmt.Errorf("discard sub-goals: %w", err)
	}
	return nil
}

func (s *KVDataStore) TimerKeyPresence(ctx context.Context) (domain.TimerKeyPresence, error) {
	remaining, err := s.store.Has(ctx, kv.KeyTimerRemaining)
	if err != nil {
		return domain.TimerKeyPresence{}, fmt.Errorf("read timer snapshot: %w", err)
	}
	title, err := s.store.Has(ctx, kv.KeyTimerTitle)
	if err != nil {
		return domain.TimerKeyPresence{}, fmt.Errorf("read timer snapshot: %w", err)
	}
	return domain.TimerKeyPresence{Remaining: remaining, Title: title}, nil
}

func (s *KVDataStore) DiscardTimer(ctx context.Context) error {
	if err := s.store.RemoveMany(ctx, kv.TimerKeys()...); err != nil {
		return fmt.Errorf("discard timer snapshot: %w", err)
	}
	return nil
}

func (s *KVDataStore) RemoveAll(ctx context.Context) error {
	if err := s.store.RemoveMany(ctx, kv.AllKeys()...); err != nil {
		return fmt.Errorf("reset data: %w", err)
	}
	return nil
}
