package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	apperrors "sprintbell/internal/platform/errors"
)

const (
	Scheme = "sprintbell"

	DefaultMinutes    = 25
	DefaultTitle      = "Focus Session"
	DefaultStopResult = "Stopped"

	// StopResetTitle is the idle title left behind by a stop command.
	StopResetTitle = "SprintBell"
)

type Kind string

const (
	KindStart Kind = "start"
	KindPause Kind = "pause"
	KindStop  Kind = "stop"
	KindNote  Kind = "note"
)

// Command is a parsed sprintbell:// URL.
type Command struct {
	Kind    Kind
	Minutes int
	Title   string
	Goals   []string
	Result  string
	Text    string
}

func (c Command) DurationSeconds() int {
	return c.Minutes * 60
}

func Parse(raw string) (Command, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Command{}, fmt.Errorf("parse command url: %w: %v", apperrors.ErrInvalidInput, err)
	}
	if u.Scheme != Scheme {
		return Command{}, fmt.Errorf("%w: %q", apperrors.ErrSchemeMismatch, u.Scheme)
	}
	host := strings.ToLower(u.Host)
	if host == "" {
		return Command{}, fmt.Errorf("%w: no command in %q", apperrors.ErrUnknownCommand, raw)
	}
	query := u.Query()

	switch Kind(host) {
	case KindStart:
		cmd := Command{Kind: KindStart, Minutes: DefaultMinutes, Title: DefaultTitle}
		if mins, err := strconv.Atoi(query.Get("mins")); err == nil {
			if mins < 0 {
				return Command{}, fmt.Errorf("mins must not be negative: %w", apperrors.ErrInvalidInput)
			}
			cmd.Minutes = mins
		}
		if title := strings.TrimSpace(query.Get("title")); title != "" {
			cmd.Title = title
		}
		cmd.Goals = SplitGoals(query.Get("goals"))
		return cmd, nil
	case KindPause:
		return Command{Kind: KindPause}, nil
	case KindStop:
		result := strings.TrimSpace(query.Get("result"))
		if result == "" {
			result = DefaultStopResult
		}
		return Command{Kind: KindStop, Result: result}, nil
	case KindNote:
		return Command{Kind: KindNote, Text: strings.TrimSpace(query.Get("text"))}, nil
	default:
		return Command{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownCommand, host)
	}
}

// SplitGoals splits a comma separated list, trimming entries and dropping empty ones.
func SplitGoals(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if goal := strings.TrimSpace(part); goal != "" {
			out = append(out, goal)
		}
	}
	return out
}
