package domain

import "time"

type EventKind string

const (
	EventStarted    EventKind = "started"
	EventTick       EventKind = "tick"
	EventStopped    EventKind = "stopped"
	EventReset      EventKind = "reset"
	EventCompleted  EventKind = "completed"
	EventNewSession EventKind = "new_session"
	EventRestored   EventKind = "restored"
)

type Event struct {
	Kind   EventKind
	State  State
	Result *SessionResult
	At     time.Time
}

// SessionResult describes a session that just ended, before it is logged.
type SessionResult struct {
	Title                  string
	PlannedDurationSeconds int
	ActualDurationSeconds  int
	StartTime              time.Time
	EndTime                time.Time
	WasCompleted           bool
	WasInterrupted         bool
	CompletedGoals         []string
	PendingGoals           []string
}

// CompletionSummary is what the completion notification shows.
type CompletionSummary struct {
	Title                  string
	ActualDurationSeconds  int
	PlannedDurationSeconds int
	CompletedGoals         int
	TotalGoals             int
}

func (s CompletionSummary) CompletionRate() float64 {
	if s.TotalGoals == 0 {
		return 1
	}
	return float64(s.CompletedGoals) / float64(s.TotalGoals)
}
