package domain

import (
	"fmt"
	"time"
)

// Fallbacks used when preference defaults cannot be read.
const (
	FallbackDurationSeconds = 1500
	FallbackTitle           = "Focus Session"
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRunning   Phase = "running"
	PhaseCompleted Phase = "completed"
)

// State is the live countdown. RemainingSeconds never exceeds TotalDurationSeconds.
type State struct {
	RemainingSeconds     int
	TotalDurationSeconds int
	Title                string
	IsRunning            bool
	SessionStartTime     *time.Time
}

func NewState(duration int, title string) State {
	return State{RemainingSeconds: duration, TotalDurationSeconds: duration, Title: title}
}

func (s State) Phase() Phase {
	switch {
	case s.IsRunning:
		return PhaseRunning
	case s.RemainingSeconds == 0:
		return PhaseCompleted
	default:
		return PhaseIdle
	}
}

// Progress is the elapsed fraction of the planned duration.
func (s State) Progress() float64 {
	if s.TotalDurationSeconds <= 0 {
		return 0
	}
	return float64(s.TotalDurationSeconds-s.RemainingSeconds) / float64(s.TotalDurationSeconds)
}

func (s State) Clone() State {
	if s.SessionStartTime != nil {
		start := *s.SessionStartTime
		s.SessionStartTime = &start
	}
	return s
}

// FormatTime renders seconds as MM:SS; minutes are not wrapped at an hour.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// DisplayText is the one-line status shown in the status bar and TUI header.
func DisplayText(s State) string {
	switch {
	case s.RemainingSeconds == 0 && !s.IsRunning:
		return "00:00 • " + s.Title + " ✅"
	case s.IsRunning:
		return FormatTime(s.RemainingSeconds) + " • " + s.Title
	default:
		return FormatTime(s.RemainingSeconds) + " • " + s.Title + " ⏸"
	}
}

// Snapshot is the durable form of State, without the session start time.
type Snapshot struct {
	RemainingSeconds     int
	IsRunning            bool
	Title                string
	TotalDurationSeconds int
	LastSavedAt          time.Time
}

func SnapshotOf(s State, now time.Time) Snapshot {
	return Snapshot{
		RemainingSeconds:     s.RemainingSeconds,
		IsRunning:            s.IsRunning,
		Title:                s.Title,
		TotalDurationSeconds: s.TotalDurationSeconds,
		LastSavedAt:          now,
	}
}

// Restore loads a snapshot as a stopped countdown. A snapshot saved while running
// more than grace ago loses the wall-clock gap from its remaining time.
func Restore(snap Snapshot, now time.Time, grace time.Duration) State {
	remaining := snap.RemainingSeconds
	if snap.IsRunning && !snap.LastSavedAt.IsZero() {
		if gap := now.Sub(snap.LastSavedAt); gap > grace {
			remaining -= int(gap / time.Second)
		}
	}
	if remaining < 0 {
		remaining = 0
	}
	total := snap.TotalDurationSeconds
	if total < remaining {
		total = remaining
	}
	return State{RemainingSeconds: remaining, TotalDurationSeconds: total, Title: snap.Title}
}
