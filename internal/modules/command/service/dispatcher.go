package service

import (
	"context"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"sprintbell/internal/modules/command/domain"
	"sprintbell/internal/modules/command/dto"
	commandout "sprintbell/internal/modules/command/port/out"
)

type Dispatcher struct {
	timer  commandout.Timer
	goals  commandout.Goals
	logger hclog.Logger
}

func NewDispatcher(timer commandout.Timer, goals commandout.Goals, logger hclog.Logger) *Dispatcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Dispatcher{timer: timer, goals: goals, logger: logger}
}

// Open never leaves the timer half-configured: a bad URL is rejected before any call.
func (d *Dispatcher) Open(ctx context.Context, rawURL string) (dto.Result, error) {
	cmd, err := domain.Parse(rawURL)
	if err != nil {
		d.logger.Warn("ignoring command url", "url", rawURL, "error", err)
		return dto.Result{}, err
	}
	d.logger.Info("handling command url", "url", rawURL, "command", cmd.Kind)

	switch cmd.Kind {
	case domain.KindStart:
		// Reset logs the running session with its own goals, so it goes first.
		if err := d.timer.Reset(ctx, cmd.DurationSeconds(), cmd.Title); err != nil {
			return dto.Result{}, fmt.Errorf("reset timer: %w", err)
		}
		if len(cmd.Goals) > 0 {
			if err := d.goals.Replace(ctx, cmd.Goals); err != nil {
				d.logger.Warn("replace sub-goals from url failed", "error", err)
			}
		}
		d.timer.Start(ctx)
		return result(cmd, fmt.Sprintf("Starting sprint: %s for %d minutes", cmd.Title, cmd.Minutes)), nil
	case domain.KindPause:
		if d.timer.Toggle(ctx) {
			return result(cmd, "Sprint resumed"), nil
		}
		return result(cmd, "Sprint paused"), nil
	case domain.KindStop:
		d.timer.Stop(ctx)
		if err := d.timer.Reset(ctx, 0, domain.StopResetTitle); err != nil {
			return dto.Result{}, fmt.Errorf("reset timer: %w", err)
		}
		d.logger.Info("sprint stopped", "result", cmd.Result)
		return result(cmd, "Stopping sprint with result: "+cmd.Result), nil
	default:
		if cmd.Text == "" {
			d.logger.Info("note command received without text")
			return result(cmd, "Note command received but no text provided"), nil
		}
		d.logger.Info("session note", "text", cmd.Text)
		return result(cmd, "Adding note: "+cmd.Text), nil
	}
}

func (d *Dispatcher) VSCode(input dto.IntegrationInput) (dto.IntegrationOutput, error) {
	opener := input.Opener
	if len(opener) == 0 {
		opener = []string{"sprintbell", "open"}
	}
	modifier := input.Modifier
	if modifier == "" {
		modifier = "ctrl"
	}
	tasks, err := domain.VSCodeTasks(opener)
	if err != nil {
		return dto.IntegrationOutput{}, fmt.Errorf("render tasks template: %w", err)
	}
	keys, err := domain.VSCodeKeybindings(modifier)
	if err != nil {
		return dto.IntegrationOutput{}, fmt.Errorf("render keybindings template: %w", err)
	}
	return dto.IntegrationOutput{
		Tasks:       tasks,
		Keybindings: keys,
		StartURL:    domain.StartURL(domain.DefaultMinutes, domain.DefaultTitle, nil),
		PauseURL:    domain.PauseURL(),
		StopURL:     domain.StopURL("Complete"),
		NoteURL:     domain.NoteURL("Remember to stretch"),
	}, nil
}

func result(cmd domain.Command, message string) dto.Result {
	return dto.Result{Command: string(cmd.Kind), Message: message}
}
