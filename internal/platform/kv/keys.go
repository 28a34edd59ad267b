package kv

// Persisted key names. The timer snapshot is five related keys written together.
const (
	KeyTimerRemaining = Namespace + "timer.remainingSeconds"
	KeyTimerRunning   = Namespace + "timer.isRunning"
	KeyTimerTitle     = Namespace + "timer.mainTitle"
	KeyTimerTotal     = Namespace + "timer.totalDuration"
	KeyTimerLastSaved = Namespace + "timer.lastSaved"

	KeySubGoals = Namespace + "subGoals"

	KeyPrefDefaultDuration         = Namespace + "preferences.defaultDuration"
	KeyPrefSoundEnabled            = Namespace + "preferences.soundEnabled"
	KeyPrefLastUsedTitle           = Namespace + "preferences.lastUsedTitle"
	KeyPrefNotificationsEnabled    = Namespace + "preferences.notificationsEnabled"
	KeyPrefShowNotificationActions = Namespace + "preferences.showNotificationActions"

	KeyAppFirstLaunch = Namespace + "app.firstLaunch"
	KeyAppVersion     = Namespace + "app.version"
)

func TimerKeys() []string {
	return []string{KeyTimerRemaining, KeyTimerRunning, KeyTimerTitle, KeyTimerTotal, KeyTimerLastSaved}
}

// AllKeys lists every key the application owns.
func AllKeys() []string {
	return append(TimerKeys(),
		KeySubGoals,
		KeyPrefDefaultDuration,
		KeyPrefSoundEnabled,
		KeyPrefLastUsedTitle,
		KeyPrefNotificationsEnabled,
		KeyPrefShowNotificationActions,
		KeyAppFirstLaunch,
		KeyAppVersion,
	)
}
