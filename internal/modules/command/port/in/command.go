package in

import (
	"context"

	"sprintbell/internal/modules/command/dto"
)

type Usecase interface {
	// Open parses and runs a sprintbell:// URL.
	Open(ctx context.Context, rawURL string) (dto.Result, error)
	VSCode(ctx context.Context, input dto.IntegrationInput) (dto.IntegrationOutput, error)
}
