package usecase

import (
	"context"

	"sprintbell/internal/modules/preferences/domain"
	"sprintbell/internal/modules/preferences/dto"
	prefin "sprintbell/internal/modules/preferences/port/in"
	"sprintbell/internal/modules/preferences/service"
)

type Interactor struct {
	svc *service.PreferenceService
}

func NewInteractor(svc *service.PreferenceService) prefin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) (dto.PreferencesOutput, error) {
	prefs, err := i.svc.Get(ctx)
	if err != nil {
		return dto.PreferencesOutput{}, err
	}
	return toOutput(prefs), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.PreferencesOutput, error) {
	prefs, err := i.svc.Update(ctx, domain.Patch{
		DefaultDuration:         input.DefaultDuration,
		SoundEnabled:            input.SoundEnabled,
		LastUsedTitle:           input.LastUsedTitle,
		NotificationsEnabled:    input.NotificationsEnabled,
		ShowNotificationActions: input.ShowNotificationActions,
	})
	if err != nil {
		return dto.PreferencesOutput{}, err
	}
	return toOutput(prefs), nil
}

func (i *Interactor) MarkLaunched(ctx context.Context, version string) (dto.LaunchOutput, error) {
	prefs, err := i.svc.MarkLaunched(ctx, version)
	if err != nil {
		return dto.LaunchOutput{}, err
	}
	return dto.LaunchOutput{FirstLaunch: prefs.FirstLaunch, AppVersion: prefs.AppVersion}, nil
}

func (i *Interactor) ResetAllData(ctx context.Context) error {
	return i.svc.ResetAllData(ctx)
}

func (i *Interactor) ValidateData(ctx context.Context) (dto.ValidationOutput, error) {
	v, err := i.svc.ValidateData(ctx)
	if err != nil {
		return dto.ValidationOutput{}, err
	}
	return dto.ValidationOutput{Valid: v.Valid, SubGoalsReset: v.SubGoalsReset, TimerDiscarded: v.TimerDiscarded}, nil
}

func toOutput(p domain.Preferences) dto.PreferencesOutput {
	return dto.PreferencesOutput{
		DefaultDuration:         p.DefaultDuration,
		SoundEnabled:            p.SoundEnabled,
		LastUsedTitle:           p.LastUsedTitle,
		NotificationsEnabled:    p.NotificationsEnabled,
		ShowNotificationActions: p.ShowNotificationActions,
		FirstLaunch:             p.FirstLaunch,
		AppVersion:              p.AppVersion,
	}
}
