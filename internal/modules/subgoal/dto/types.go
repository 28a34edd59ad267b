package dto

import "time"

type GoalOutput struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListOutput struct {
	Goals        []GoalOutput `json:"goals"`
	Completed    int          `json:"completed"`
	Total        int          `json:"total"`
	Progress     float64      `json:"progress"`
	AllCompleted bool         `json:"all_completed"`
}

type SummaryOutput struct {
	Completed []string `json:"completed"`
	Pending   []string `json:"pending"`
}
