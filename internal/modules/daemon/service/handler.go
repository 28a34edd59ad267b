package service

import (
	"context"
	"fmt"
	"os"

	commanddto "sprintbell/internal/modules/command/dto"
	"sprintbell/internal/modules/daemon/dto"
	subgoaldto "sprintbell/internal/modules/subgoal/dto"
	timerdto "sprintbell/internal/modules/timer/dto"
	apperrors "sprintbell/internal/platform/errors"
)

// localHandler executes RPC requests against the in-process usecases.
type localHandler struct {
	svc *DaemonService
}

func (h *localHandler) Open(ctx context.Context, rawURL string) (commanddto.Result, error) {
	return h.svc.deps.Commands.Open(ctx, rawURL)
}

func (h *localHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	goals, err := h.svc.deps.Goals.List(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	h.svc.mu.Lock()
	startedAt := h.svc.startedAt
	h.svc.mu.Unlock()
	return dto.StatusOutput{
		PID:       os.Getpid(),
		StartedAt: startedAt,
		Timer:     h.svc.deps.Timer.State(ctx),
		Goals:     goals,
	}, nil
}

func (h *localHandler) Timer(ctx context.Context, req dto.TimerRequest) (timerdto.StateOutput, error) {
	timer := h.svc.deps.Timer
	switch req.Action {
	case dto.TimerStatus:
		return timer.State(ctx), nil
	case dto.TimerStart:
		return timer.Start(ctx), nil
	case dto.TimerStop:
		return timer.Stop(ctx), nil
	case dto.TimerPause:
		return timer.Toggle(ctx), nil
	case dto.TimerSave:
		timer.ForceSave(ctx)
		return timer.State(ctx), nil
	case dto.TimerReset:
		input := timerdto.ResetInput{}
		current := timer.State(ctx)
		input.DurationSeconds = current.TotalDurationSeconds
		input.Title = current.Title
		if req.DurationSeconds != nil {
			input.DurationSeconds = *req.DurationSeconds
		}
		if req.Title != nil {
			input.Title = *req.Title
		}
		return timer.Reset(ctx, input)
	case dto.TimerNew:
		return timer.NewSession(ctx, timerdto.NewSessionInput{
			DurationSeconds: req.DurationSeconds,
			Title:           req.Title,
			KeepSubGoals:    req.KeepSubGoals,
		})
	default:
		return timerdto.StateOutput{}, fmt.Errorf("timer action %q: %w", req.Action, apperrors.ErrInvalidInput)
	}
}

func (h *localHandler) Goals(ctx context.Context, req dto.GoalsRequest) (subgoaldto.ListOutput, error) {
	goals := h.svc.deps.Goals
	var err error
	switch req.Action {
	case dto.GoalsList:
	case dto.GoalsAdd:
		_, err = goals.Add(ctx, req.Arg)
	case dto.GoalsToggle:
		_, err = goals.Toggle(ctx, req.Arg)
	case dto.GoalsDelete:
		err = goals.Delete(ctx, req.Arg)
	case dto.GoalsClear:
		err = goals.ClearAll(ctx)
	case dto.GoalsDoneAll:
		err = goals.MarkAllCompleted(ctx)
	default:
		err = fmt.Errorf("goals action %q: %w", req.Action, apperrors.ErrInvalidInput)
	}
	if err != nil {
		return subgoaldto.ListOutput{}, err
	}
	return goals.List(ctx)
}

func (h *localHandler) Stop(context.Context) error {
	h.svc.stopRun()
	return nil
}
