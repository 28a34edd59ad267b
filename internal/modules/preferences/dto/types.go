package dto

type PreferencesOutput struct {
	DefaultDuration         int    `json:"default_duration"`
	SoundEnabled            bool   `json:"sound_enabled"`
	LastUsedTitle           string `json:"last_used_title"`
	NotificationsEnabled    bool   `json:"notifications_enabled"`
	ShowNotificationActions bool   `json:"show_notification_actions"`
	FirstLaunch             bool   `json:"first_launch"`
	AppVersion              string `json:"app_version"`
}

type UpdateInput struct {
	DefaultDuration         *int
	SoundEnabled            *bool
	LastUsedTitle           *string
	NotificationsEnabled    *bool
	ShowNotificationActions *bool
}

type ValidationOutput struct {
	Valid          bool
	SubGoalsReset  bool
	TimerDiscarded bool
}

type LaunchOutput struct {
	FirstLaunch bool
	AppVersion  string
}
