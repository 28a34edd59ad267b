package out

import (
	"context"

	"sprintbell/internal/modules/effects/domain"
	effectsout "sprintbell/internal/modules/effects/port/out"
	prefin "sprintbell/internal/modules/preferences/port/in"
)

type PreferenceSettings struct {
	usecase prefin.Usecase
}

func NewPreferenceSettings(usecase prefin.Usecase) effectsout.SettingsSource {
	return &PreferenceSettings{usecase: usecase}
}

func (s *PreferenceSettings) Settings(ctx context.Context) (domain.Settings, error) {
	prefs, err := s.usecase.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return domain.Settings{
		SoundEnabled:         prefs.SoundEnabled,
		NotificationsEnabled: prefs.NotificationsEnabled,
		ShowActions:          prefs.ShowNotificationActions,
	}, nil
}
