package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// wireRecord fields are declared in key order so every line is written with sorted keys.
type wireRecord struct {
	ActualDurationSeconds  *int     `json:"actualDurationSeconds,omitempty"`
	AppVersion             *string  `json:"appVersion,omitempty"`
	CompletedSubGoalTexts  []string `json:"completedSubGoalTexts"`
	CompletedSubGoals      int      `json:"completedSubGoals"`
	CompletionPercentage   float64  `json:"completionPercentage"`
	EndTime                *string  `json:"endTime,omitempty"`
	LoggedAt               string   `json:"loggedAt"`
	PendingSubGoalTexts    []string `json:"pendingSubGoalTexts"`
	PlannedDurationSeconds int      `json:"plannedDurationSeconds"`
	Platform               string   `json:"platform"`
	SessionID              string   `json:"sessionId"`
	StartTime              string   `json:"startTime"`
	SubGoalCompletionRate  float64  `json:"subGoalCompletionRate"`
	Title                  string   `json:"title"`
	TotalSubGoals          int      `json:"totalSubGoals"`
	WasCompleted           bool     `json:"wasCompleted"`
	WasInterrupted         bool     `json:"wasInterrupted"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// MarshalLine encodes a record as one JSON object without a trailing newline.
func MarshalLine(r SessionRecord) ([]byte, error) {
	w := wireRecord{
		ActualDurationSeconds:  r.ActualDurationSeconds,
		AppVersion:             r.AppVersion,
		CompletedSubGoalTexts:  nonNil(r.CompletedSubGoalTexts),
		CompletedSubGoals:      r.CompletedSubGoals,
		CompletionPercentage:   r.CompletionPercentage,
		LoggedAt:               formatTime(r.LoggedAt),
		PendingSubGoalTexts:    nonNil(r.PendingSubGoalTexts),
		PlannedDurationSeconds: r.PlannedDurationSeconds,
		Platform:               r.Platform,
		SessionID:              r.SessionID,
		StartTime:              formatTime(r.StartTime),
		SubGoalCompletionRate:  r.SubGoalCompletionRate,
		Title:                  r.Title,
		TotalSubGoals:          r.TotalSubGoals,
		WasCompleted:           r.WasCompleted,
		WasInterrupted:         r.WasInterrupted,
	}
	if r.EndTime != nil {
		end := formatTime(*r.EndTime)
		w.EndTime = &end
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("marshal session record: %w", err)
	}
	return raw, nil
}

func UnmarshalLine(line []byte) (SessionRecord, error) {
	w := wireRecord{}
	if err := json.Unmarshal(line, &w); err != nil {
		return SessionRecord{}, fmt.Errorf("decode session record: %w", err)
	}
	start, err := time.Parse(time.RFC3339, w.StartTime)
	if err != nil {
		return SessionRecord{}, fmt.Errorf("decode startTime: %w", err)
	}
	logged, err := time.Parse(time.RFC3339, w.LoggedAt)
	if err != nil {
		return SessionRecord{}, fmt.Errorf("decode loggedAt: %w", err)
	}
	r := SessionRecord{
		SessionID:              w.SessionID,
		Title:                  w.Title,
		PlannedDurationSeconds: w.PlannedDurationSeconds,
		ActualDurationSeconds:  w.ActualDurationSeconds,
		StartTime:              start,
		LoggedAt:               logged,
		WasCompleted:           w.WasCompleted,
		WasInterrupted:         w.WasInterrupted,
		CompletionPercentage:   w.CompletionPercentage,
		TotalSubGoals:          w.TotalSubGoals,
		CompletedSubGoals:      w.CompletedSubGoals,
		SubGoalCompletionRate:  w.SubGoalCompletionRate,
		CompletedSubGoalTexts:  nonNil(w.CompletedSubGoalTexts),
		PendingSubGoalTexts:    nonNil(w.PendingSubGoalTexts),
		AppVersion:             w.AppVersion,
		Platform:               w.Platform,
	}
	if w.EndTime != nil {
		end, err := time.Parse(time.RFC3339, *w.EndTime)
		if err != nil {
			return SessionRecord{}, fmt.Errorf("decode endTime: %w", err)
		}
		r.EndTime = &end
	}
	return r, nil
}
