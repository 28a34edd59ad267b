package dto

import "time"

type StateOutput struct {
	RemainingSeconds     int        `json:"remaining_seconds"`
	TotalDurationSeconds int        `json:"total_duration_seconds"`
	Title                string     `json:"title"`
	IsRunning            bool       `json:"is_running"`
	Phase                string     `json:"phase"`
	SessionStartTime     *time.Time `json:"session_start_time,omitempty"`
	DisplayText          string     `json:"display_text"`
	Progress             float64    `json:"progress"`
}

type ResetInput struct {
	DurationSeconds int
	Title           string
}

type NewSessionInput struct {
	DurationSeconds *int
	Title           *string
	KeepSubGoals    bool
}

type ResultOutput struct {
	Title                  string   `json:"title"`
	PlannedDurationSeconds int      `json:"planned_duration_seconds"`
	ActualDurationSeconds  int      `json:"actual_duration_seconds"`
	WasCompleted           bool     `json:"was_completed"`
	WasInterrupted         bool     `json:"was_interrupted"`
	CompletedGoals         []string `json:"completed_goals"`
	PendingGoals           []string `json:"pending_goals"`
}

type EventOutput struct {
	Kind   string        `json:"kind"`
	State  StateOutput   `json:"state"`
	Result *ResultOutput `json:"result,omitempty"`
	At     time.Time     `json:"at"`
}
