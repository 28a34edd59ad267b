package domain

import (
	"fmt"
	"time"
)

const (
	OutcomeCompleted   = "completed"
	OutcomeInterrupted = "interrupted"
	OutcomeIncomplete  = "incomplete"
)

// SessionRecord is one finished or abandoned focus session as written to the log.
type SessionRecord struct {
	SessionID              string
	Title                  string
	PlannedDurationSeconds int
	ActualDurationSeconds  *int
	StartTime              time.Time
	EndTime                *time.Time
	LoggedAt               time.Time
	WasCompleted           bool
	WasInterrupted         bool
	CompletionPercentage   float64
	TotalSubGoals          int
	CompletedSubGoals      int
	SubGoalCompletionRate  float64
	CompletedSubGoalTexts  []string
	PendingSubGoalTexts    []string
	AppVersion             *string
	Platform               string
}

type RecordParams struct {
	SessionID              string
	Title                  string
	PlannedDurationSeconds int
	ActualDurationSeconds  *int
	StartTime              time.Time
	EndTime                *time.Time
	LoggedAt               time.Time
	WasCompleted           bool
	WasInterrupted         bool
	CompletedSubGoalTexts  []string
	PendingSubGoalTexts    []string
	AppVersion             *string
	Platform               string
}

// NewRecord fills in the derived ratios from the raw session facts.
func NewRecord(p RecordParams) SessionRecord {
	completed := nonNil(p.CompletedSubGoalTexts)
	pending := nonNil(p.PendingSubGoalTexts)
	total := len(completed) + len(pending)
	return SessionRecord{
		SessionID:              p.SessionID,
		Title:                  p.Title,
		PlannedDurationSeconds: p.PlannedDurationSeconds,
		ActualDurationSeconds:  p.ActualDurationSeconds,
		StartTime:              p.StartTime,
		EndTime:                p.EndTime,
		LoggedAt:               p.LoggedAt,
		WasCompleted:           p.WasCompleted,
		WasInterrupted:         p.WasInterrupted,
		CompletionPercentage:   CompletionPercentage(p.ActualDurationSeconds, p.PlannedDurationSeconds, p.WasCompleted),
		TotalSubGoals:          total,
		CompletedSubGoals:      len(completed),
		SubGoalCompletionRate:  SubGoalCompletionRate(len(completed), total),
		CompletedSubGoalTexts:  completed,
		PendingSubGoalTexts:    pending,
		AppVersion:             p.AppVersion,
		Platform:               p.Platform,
	}
}

// CompletionPercentage is actual/planned capped at 1. Without an actual duration,
// or with nothing planned, it is 1 for a completed session and 0 otherwise.
func CompletionPercentage(actual *int, planned int, completed bool) float64 {
	if actual == nil || planned <= 0 {
		if completed {
			return 1
		}
		return 0
	}
	ratio := float64(*actual) / float64(planned)
	if ratio > 1 {
		return 1
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}

// SubGoalCompletionRate is 1 when there are no goals.
func SubGoalCompletionRate(completed, total int) float64 {
	if total <= 0 {
		return 1
	}
	return float64(completed) / float64(total)
}

func (r SessionRecord) Outcome() string {
	switch {
	case r.WasCompleted:
		return OutcomeCompleted
	case r.WasInterrupted:
		return OutcomeInterrupted
	default:
		return OutcomeIncomplete
	}
}

func (r SessionRecord) EffectivenessScore() float64 {
	return (r.CompletionPercentage + r.SubGoalCompletionRate) / 2
}

// FormattedDuration renders the actual duration as m:ss.
func (r SessionRecord) FormattedDuration() string {
	seconds := 0
	if r.ActualDurationSeconds != nil {
		seconds = *r.ActualDurationSeconds
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
