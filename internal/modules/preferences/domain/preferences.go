package domain

const (
	DefaultDurationSeconds = 1500
	DefaultTitle           = "Focus Session"
	DefaultAppVersion      = "1.0.0"
)

type Preferences struct {
	DefaultDuration         int
	SoundEnabled            bool
	LastUsedTitle           string
	NotificationsEnabled    bool
	ShowNotificationActions bool
	FirstLaunch             bool
	AppVersion              string
}

func Defaults() Preferences {
	return Preferences{
		DefaultDuration:         DefaultDurationSeconds,
		SoundEnabled:            true,
		LastUsedTitle:           DefaultTitle,
		NotificationsEnabled:    true,
		ShowNotificationActions: true,
		FirstLaunch:             true,
		AppVersion:              DefaultAppVersion,
	}
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	DefaultDuration         *int
	SoundEnabled            *bool
	LastUsedTitle           *string
	NotificationsEnabled    *bool
	ShowNotificationActions *bool
}

func (p Patch) Empty() bool {
	return p.DefaultDuration == nil && p.SoundEnabled == nil && p.LastUsedTitle == nil &&
		p.NotificationsEnabled == nil && p.ShowNotificationActions == nil
}

func (p Preferences) Apply(patch Patch) Preferences {
	if patch.DefaultDuration != nil {
		p.DefaultDuration = NormalizeDuration(*patch.DefaultDuration)
	}
	if patch.SoundEnabled != nil {
		p.SoundEnabled = *patch.SoundEnabled
	}
	if patch.LastUsedTitle != nil {
		p.LastUsedTitle = *patch.LastUsedTitle
	}
	if patch.NotificationsEnabled != nil {
		p.NotificationsEnabled = *patch.NotificationsEnabled
	}
	if patch.ShowNotificationActions != nil {
		p.ShowNotificationActions = *patch.ShowNotificationActions
	}
	return p
}

// NormalizeDuration maps a stored non-positive duration back to the default.
func NormalizeDuration(seconds int) int {
	if seconds <= 0 {
		return DefaultDurationSeconds
	}
	return seconds
}

// TimerKeyPresence reports which of the two required snapshot keys exist.
type TimerKeyPresence struct {
	Remaining bool
	Title     bool
}

// Consistent is true when both required keys exist or neither does.
func (p TimerKeyPresence) Consistent() bool {
	return p.Remaining == p.Title
}

type Validation struct {
	Valid          bool
	SubGoalsReset  bool
	TimerDiscarded bool
}
