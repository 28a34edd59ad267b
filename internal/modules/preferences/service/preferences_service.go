package service

import (
	"context"
	"fmt"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"sprintbell/internal/modules/preferences/domain"
	prefout "sprintbell/internal/modules/preferences/port/out"
	apperrors "sprintbell/internal/platform/errors"
)

type PreferenceService struct {
	store  prefout.PreferenceStore
	data   prefout.DataStore
	logger hclog.Logger
}

func NewPreferenceService(store prefout.PreferenceStore, data prefout.DataStore, logger hclog.Logger) *PreferenceService {
	return &PreferenceService{store: store, data: data, logger: logger}
}

func (s *PreferenceService) Get(ctx context.Context) (domain.Preferences, error) {
	return s.store.Load(ctx)
}

func (s *PreferenceService) Update(ctx context.Context, patch domain.Patch) (domain.Preferences, error) {
	if patch.DefaultDuration != nil && *patch.DefaultDuration <= 0 {
		return domain.Preferences{}, fmt.Errorf("default duration must be positive: %w", apperrors.ErrInvalidInput)
	}
	if patch.LastUsedTitle != nil {
		title := strings.TrimSpace(*patch.LastUsedTitle)
		if title == "" {
			return domain.Preferences{}, fmt.Errorf("title is required: %w", apperrors.ErrInvalidInput)
		}
		patch.LastUsedTitle = &title
	}
	if !patch.Empty() {
		if err := s.store.Apply(ctx, patch); err != nil {
			return domain.Preferences{}, err
		}
	}
	return s.store.Load(ctx)
}

// MarkLaunched clears the first-launch flag and records the running version.
// The returned preferences still report whether this was the first launch.
func (s *PreferenceService) MarkLaunched(ctx context.Context, version string) (domain.Preferences, error) {
	prefs, err := s.store.Load(ctx)
	if err != nil {
		return domain.Preferences{}, err
	}
	if !prefs.FirstLaunch && prefs.AppVersion == version {
		return prefs, nil
	}
	if err := s.store.MarkLaunched(ctx, version); err != nil {
		return domain.Preferences{}, err
	}
	if prefs.FirstLaunch {
		s.logger.Info("first launch", "version", version)
	} else {
		s.logger.Info("version changed", "from", prefs.AppVersion, "to", version)
	}
	prefs.AppVersion = version
	return prefs, nil
}

func (s *PreferenceService) ResetAllData(ctx context.Context) error {
	if err := s.data.RemoveAll(ctx); err != nil {
		return err
	}
	s.logger.Info("all persisted data reset")
	return nil
}

// ValidateData repairs persisted state before anything loads it: an undecodable
// sub-goal blob is dropped, and a timer snapshot missing one of its required keys
// is discarded whole.
func (s *PreferenceService) ValidateData(ctx context.Context) (domain.Validation, error) {
	result := domain.Validation{Valid: true}

	decodable, err := s.data.SubGoalsDecodable(ctx)
	if err != nil {
		return domain.Validation{}, err
	}
	if !decodable {
		s.logger.Warn("sub-goal data is corrupted, resetting to empty list")
		if err := s.data.DiscardSubGoals(ctx); err != nil {
			return domain.Validation{}, err
		}
		result.Valid = false
		result.SubGoalsReset = true
	}

	presence, err := s.data.TimerKeyPresence(ctx)
	if err != nil {
		return domain.Validation{}, err
	}
	if !presence.Consistent() {
		s.logger.Warn("timer snapshot is inconsistent, discarding",
			"has_remaining", presence.Remaining, "has_title", presence.Title)
		if err := s.data.DiscardTimer(ctx); err != nil {
			return domain.Validation{}, err
		}
		result.Valid = false
		result.TimerDiscarded = true
	}
	return result, nil
}
