package service

import (
	"context"
	"errors"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"sprintbell/internal/modules/effects/domain"
	"sprintbell/internal/modules/effects/dto"
	effectsout "sprintbell/internal/modules/effects/port/out"
	apperrors "sprintbell/internal/platform/errors"
)

// EffectsService delivers completion notifications through an ordered chain of
// backends and plays the completion sound through an ordered chain of players.
type EffectsService struct {
	backends []effectsout.Backend
	players  []effectsout.Player
	settings effectsout.SettingsSource
	logger   hclog.Logger
}

func NewEffectsService(backends []effectsout.Backend, players []effectsout.Player, settings effectsout.SettingsSource, logger hclog.Logger) *EffectsService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &EffectsService{backends: backends, players: players, settings: settings, logger: logger}
}

// RequestPermission reports whether any backend could deliver a notification.
func (s *EffectsService) RequestPermission(ctx context.Context) bool {
	for _, backend := range s.backends {
		if err := backend.Available(ctx); err == nil {
			s.logger.Info("notifications available", "backend", backend.Name())
			return true
		}
	}
	s.logger.Warn("no notification backend available")
	return false
}

func (s *EffectsService) IsEnabled(ctx context.Context) bool {
	return s.loadSettings(ctx).NotificationsEnabled
}

func (s *EffectsService) NotifyCompletion(ctx context.Context, input dto.CompletionInput) error {
	settings := s.loadSettings(ctx)
	if !settings.NotificationsEnabled {
		s.logger.Debug("notifications disabled, skipping")
		return nil
	}
	notification := domain.CompletionNotification(toCompletion(input), settings)
	backend, err := s.deliver(ctx, notification)
	if err != nil {
		return err
	}
	s.logger.Info("completion notification sent", "backend", backend, "title", input.Title)
	return nil
}

func (s *EffectsService) PlayCompletion(ctx context.Context) {
	if !s.loadSettings(ctx).SoundEnabled {
		s.logger.Debug("sound disabled, skipping")
		return
	}
	for _, player := range s.players {
		if err := player.Play(ctx); err != nil {
			s.logger.Warn("completion sound failed", "player", player.Name(), "error", err)
			continue
		}
		return
	}
	s.logger.Warn("no completion sound could be played")
}

func (s *EffectsService) Backends(ctx context.Context) []dto.BackendOutput {
	out := make([]dto.BackendOutput, 0, len(s.backends))
	for _, backend := range s.backends {
		status := domain.BackendStatus{Name: backend.Name(), Available: true}
		if err := backend.Available(ctx); err != nil {
			status.Available = false
			status.Detail = err.Error()
		}
		out = append(out, dto.BackendOutput{Name: status.Name, Available: status.Available, Detail: status.Detail})
	}
	return out
}

// TestNotification sends a sample completion regardless of the notifications preference.
func (s *EffectsService) TestNotification(ctx context.Context) (dto.DeliveryOutput, error) {
	settings := s.loadSettings(ctx)
	notification := domain.CompletionNotification(domain.Completion{
		Title:                  "SprintBell test",
		ActualDurationSeconds:  1500,
		PlannedDurationSeconds: 1500,
		CompletedGoals:         1,
		TotalGoals:             2,
	}, settings)
	backend, err := s.deliver(ctx, notification)
	if err != nil {
		return dto.DeliveryOutput{}, err
	}
	return dto.DeliveryOutput{Backend: backend, Title: notification.Title, Body: notification.Body}, nil
}

func (s *EffectsService) deliver(ctx context.Context, notification domain.Notification) (string, error) {
	var failures []error
	for _, backend := range s.backends {
		if err := backend.Available(ctx); err != nil {
			s.logger.Debug("notification backend unavailable", "backend", backend.Name(), "error", err)
			continue
		}
		if err := backend.Deliver(ctx, notification); err != nil {
			s.logger.Warn("notification backend failed", "backend", backend.Name(), "error", err)
			failures = append(failures, fmt.Errorf("%s: %w", backend.Name(), err))
			continue
		}
		return backend.Name(), nil
	}
	if len(failures) == 0 {
		return "", apperrors.ErrNotifierUnavailable
	}
	return "", fmt.Errorf("deliver notification: %w", errors.Join(append([]error{apperrors.ErrNotifierUnavailable}, failures...)...))
}

func (s *EffectsService) loadSettings(ctx context.Context) domain.Settings {
	if s.settings == nil {
		return domain.DefaultSettings()
	}
	settings, err := s.settings.Settings(ctx)
	if err != nil {
		s.logger.Warn("read effect settings failed, using defaults", "error", err)
		return domain.DefaultSettings()
	}
	return settings
}

func toCompletion(input dto.CompletionInput) domain.Completion {
	return domain.Completion{
		Title:                  input.Title,
		ActualDurationSeconds:  input.ActualDurationSeconds,
		PlannedDurationSeconds: input.PlannedDurationSeconds,
		CompletedGoals:         input.CompletedGoals,
		TotalGoals:             input.TotalGoals,
	}
}
