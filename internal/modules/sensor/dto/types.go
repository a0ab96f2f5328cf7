package dto

import "time"

type ProviderInfo struct {
	Name     string
	Version  string
	Platform string
	Binary   string
}

type PresenceOutput struct {
	InputIdle      time.Duration
	AudioRendering bool
	FullscreenApp  bool
	Uptime         time.Duration
}

type ForegroundOutput struct {
	Present        bool
	ProcessID      int
	AppName        string
	ExecutablePath string
	WindowTitle    string
}

type AudioOutput struct {
	Present      bool
	DeviceID     string
	FriendlyName string
	VolumeScalar float64
	PeakLevel    float64
}
