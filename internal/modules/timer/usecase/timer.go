package usecase

import (
	"context"

	"sprintbell/internal/modules/timer/domain"
	"sprintbell/internal/modules/timer/dto"
	timerin "sprintbell/internal/modules/timer/port/in"
	"sprintbell/internal/modules/timer/service"
)

type Interactor struct {
	manager *service.Manager
}

func NewInteractor(manager *service.Manager) timerin.Usecase {
	return &Interactor{manager: manager}
}

func (i *Interactor) State(_ context.Context) dto.StateOutput {
	return ToStateOutput(i.manager.State())
}

func (i *Interactor) Start(ctx context.Context) dto.StateOutput {
	return ToStateOutput(i.manager.Start(ctx))
}

func (i *Interactor) Stop(ctx context.Context) dto.StateOutput {
	return ToStateOutput(i.manager.Stop(ctx))
}

func (i *Interactor) Toggle(ctx context.Context) dto.StateOutput {
	return ToStateOutput(i.manager.Toggle(ctx))
}

func (i *Interactor) Reset(ctx context.Context, input dto.ResetInput) (dto.StateOutput, error) {
	state, err := i.manager.Reset(ctx, input.DurationSeconds, input.Title)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return ToStateOutput(state), nil
}

func (i *Interactor) NewSession(ctx context.Context, input dto.NewSessionInput) (dto.StateOutput, error) {
	state, err := i.manager.StartNewSession(ctx, input.DurationSeconds, input.Title, !input.KeepSubGoals)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return ToStateOutput(state), nil
}

func (i *Interactor) ForceSave(ctx context.Context) {
	i.manager.ForceSave(ctx)
}

// Subscribe relays manager events as DTOs until cancel is called or the manager shuts down.
func (i *Interactor) Subscribe(buffer int) (<-chan dto.EventOutput, func()) {
	events, cancel := i.manager.Subscribe(buffer)
	out := make(chan dto.EventOutput, cap(events))
	go func() {
		defer close(out)
		for event := range events {
			select {
			case out <- toEventOutput(event):
			default:
			}
		}
	}()
	return out, cancel
}

func ToStateOutput(s domain.State) dto.StateOutput {
	return dto.StateOutput{
		RemainingSeconds:     s.RemainingSeconds,
		TotalDurationSeconds: s.TotalDurationSeconds,
		Title:                s.Title,
		IsRunning:            s.IsRunning,
		Phase:                string(s.Phase()),
		SessionStartTime:     s.SessionStartTime,
		DisplayText:          domain.DisplayText(s),
		Progress:             s.Progress(),
	}
}

func toEventOutput(e domain.Event) dto.EventOutput {
	out := dto.EventOutput{Kind: string(e.Kind), State: ToStateOutput(e.State), At: e.At}
	if e.Result != nil {
		out.Result = &dto.ResultOutput{
			Title:                  e.Result.Title,
			PlannedDurationSeconds: e.Result.PlannedDurationSeconds,
			ActualDurationSeconds:  e.Result.ActualDurationSeconds,
			WasCompleted:           e.Result.WasCompleted,
			WasInterrupted:         e.Result.WasInterrupted,
			CompletedGoals:         e.Result.CompletedGoals,
			PendingGoals:           e.Result.PendingGoals,
		}
	}
	return out
}
