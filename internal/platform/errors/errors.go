package apperrors

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrNoSnapshot           = errors.New("no timer snapshot")
	ErrInconsistentSnapshot = errors.New("inconsistent timer snapshot")
	ErrDaemonNotRunning     = errors.New("daemon is not running")
	ErrUnknownCommand       = errors.New("unknown command")
	ErrSchemeMismatch       = errors.New("url scheme mismatch")
	ErrNotifierUnavailable  = errors.New("notifier unavailable")
	ErrPermissionDenied     = errors.New("notification permission denied")
)
