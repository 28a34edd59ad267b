package dto

import (
	"time"

	subgoaldto "sprintbell/internal/modules/subgoal/dto"
	timerdto "sprintbell/internal/modules/timer/dto"
)

const (
	TimerStatus = "status"
	TimerStart  = "start"
	TimerStop   = "stop"
	TimerPause  = "pause"
	TimerReset  = "reset"
	TimerNew    = "new"
	TimerSave   = "save"

	GoalsList    = "list"
	GoalsAdd     = "add"
	GoalsToggle  = "toggle"
	GoalsDelete  = "delete"
	GoalsClear   = "clear"
	GoalsDoneAll = "done-all"
)

type TimerRequest struct {
	Action          string
	DurationSeconds *int
	Title           *string
	KeepSubGoals    bool
}

type GoalsRequest struct {
	Action string
	Arg    string
}

type StatusOutput struct {
	PID       int                   `json:"pid"`
	StartedAt time.Time             `json:"started_at"`
	Timer     timerdto.StateOutput  `json:"timer"`
	Goals     subgoaldto.ListOutput `json:"goals"`
}

type RuntimeStatus struct {
	Running    bool          `json:"running"`
	PID        int           `json:"pid"`
	SocketPath string        `json:"socket_path"`
	Status     *StatusOutput `json:"status,omitempty"`
}
