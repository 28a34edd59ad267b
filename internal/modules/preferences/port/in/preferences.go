package in

import (
	"context"

	"sprintbell/internal/modules/preferences/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.PreferencesOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.PreferencesOutput, error)
	MarkLaunched(ctx context.Context, version string) (dto.LaunchOutput, error)
	ResetAllData(ctx context.Context) error
	ValidateData(ctx context.Context) (dto.ValidationOutput, error)
}
