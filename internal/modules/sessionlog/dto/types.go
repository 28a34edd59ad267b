package dto

import "time"

type LogInput struct {
	Title                  string
	PlannedDurationSeconds int
	ActualDurationSeconds  *int
	StartTime              time.Time
	EndTime                *time.Time
	WasCompleted           bool
	WasInterrupted         bool
	CompletedGoals         []string
	PendingGoals           []string
}

type RecordOutput struct {
	SessionID              string     `json:"session_id"`
	Title                  string     `json:"title"`
	Outcome                string     `json:"outcome"`
	PlannedDurationSeconds int        `json:"planned_duration_seconds"`
	ActualDurationSeconds  *int       `json:"actual_duration_seconds,omitempty"`
	FormattedDuration      string     `json:"formatted_duration"`
	StartTime              time.Time  `json:"start_time"`
	EndTime                *time.Time `json:"end_time,omitempty"`
	LoggedAt               time.Time  `json:"logged_at"`
	CompletionPercentage   float64    `json:"completion_percentage"`
	SubGoalCompletionRate  float64    `json:"sub_goal_completion_rate"`
	EffectivenessScore     float64    `json:"effectiveness_score"`
	CompletedSubGoals      int        `json:"completed_sub_goals"`
	TotalSubGoals          int        `json:"total_sub_goals"`
	CompletedSubGoalTexts  []string   `json:"completed_sub_goal_texts"`
	PendingSubGoalTexts    []string   `json:"pending_sub_goal_texts"`
}

type FileOutput struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

type StatsOutput struct {
	Sessions             int     `json:"sessions"`
	Completed            int     `json:"completed"`
	Interrupted          int     `json:"interrupted"`
	FocusedSeconds       int     `json:"focused_seconds"`
	AverageCompletion    float64 `json:"average_completion"`
	AverageEffectiveness float64 `json:"average_effectiveness"`
}
