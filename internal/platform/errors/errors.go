package apperrors

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrNoOpenSession    = errors.New("no open session")
	ErrNoAudioDevice    = errors.New("no default audio device")
	ErrProviderUnset    = errors.New("sensor provider is not configured")
	ErrSettingMissing   = errors.New("setting is not present")
	ErrDaemonNotRunning = errors.New("tracking daemon is not running")
	ErrDaemonRunning    = errors.New("tracking daemon is already running")
)
