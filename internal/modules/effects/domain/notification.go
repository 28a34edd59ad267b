package domain

import (
	"fmt"
	"strings"
)

const (
	CompletionTitle    = "🎯 Focus Session Complete!"
	CompletionCategory = "TIMER_COMPLETION"

	ActionStartNewSession = "START_NEW_SESSION"
	ActionViewStats       = "VIEW_STATS"
)

type Action struct {
	ID    string
	Title string
}

// Notification is backend-neutral content for one desktop notification.
type Notification struct {
	Title    string
	Body     string
	Category string
	Actions  []Action
	Sound    bool
}

// Completion summarizes a finished session for the notification body.
type Completion struct {
	Title                  string
	ActualDurationSeconds  int
	PlannedDurationSeconds int
	CompletedGoals         int
	TotalGoals             int
}

// Settings mirrors the user preferences that gate effects.
type Settings struct {
	SoundEnabled         bool
	NotificationsEnabled bool
	ShowActions          bool
}

func DefaultSettings() Settings {
	return Settings{SoundEnabled: true, NotificationsEnabled: true, ShowActions: true}
}

func CompletionNotification(c Completion, settings Settings) Notification {
	progress := "Session completed"
	if c.TotalGoals > 0 {
		progress = fmt.Sprintf("%d/%d goals completed", c.CompletedGoals, c.TotalGoals)
	}
	title := strings.TrimSpace(c.Title)
	if title == "" {
		title = "Focus Session"
	}
	n := Notification{
		Title:    CompletionTitle,
		Body:     fmt.Sprintf("%s • %s • %s", title, FormatDuration(c.ActualDurationSeconds), progress),
		Category: CompletionCategory,
		Sound:    settings.SoundEnabled,
	}
	if settings.ShowActions {
		n.Actions = []Action{
			{ID: ActionStartNewSession, Title: "Start New Session"},
			{ID: ActionViewStats, Title: "View Stats"},
		}
	}
	return n
}

// FormatDuration renders seconds as MM:SS; minutes are not wrapped at an hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
