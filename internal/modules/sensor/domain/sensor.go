package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

var (
	ErrProviderTimeout  = errors.New("sensor provider timeout")
	ErrProviderDisabled = errors.New("sensor provider is disabled")
)

// Manifest describes the platform sensor provider binary. Providers are
// separate processes because the signal sources (input idle timers, foreground
// window hooks, audio endpoint metering) are OS-specific; the engine itself
// stays portable.
type Manifest struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	Binary   string `yaml:"binary"`
	Platform string `yaml:"platform"`
	Enabled  bool   `yaml:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("provider name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("provider version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("provider binary path is required")
	}
	if !filepath.IsAbs(m.Binary) {
		return fmt.Errorf("provider binary path must be absolute after load")
	}
	return nil
}

type Metadata struct {
	Name     string
	Version  string
	Platform string
}

// PresenceReading is one sample of the "is the user here" signals.
type PresenceReading struct {
	InputIdle      time.Duration
	AudioRendering bool
	FullscreenApp  bool
	Uptime         time.Duration
}

// ForegroundReading identifies the process owning the foreground window.
// Present is false when no window has focus.
type ForegroundReading struct {
	Present        bool
	ProcessID      int
	AppName        string
	ExecutablePath string
	WindowTitle    string
}

// AudioReading samples the default render endpoint. Present is false when the
// machine has no default audio device.
type AudioReading struct {
	Present      bool
	DeviceID     string
	FriendlyName string
	VolumeScalar float64
	PeakLevel    float64
}
