package domain

import (
	"strings"
	"time"
)

// DeviceType classifies an audio endpoint by its friendly name. The base
// levels model typical peak output capability per device class; they are
// nominal figures, not measurements.
type DeviceType int

const (
	DeviceUnknown DeviceType = iota
	DeviceHeadphones
	DeviceEarphones
	DeviceHeadsets
	DeviceSpeakers
)

func (d DeviceType) String() string {
	switch d {
	case DeviceHeadphones:
		return "headphones"
	case DeviceEarphones:
		return "earphones"
	case DeviceHeadsets:
		return "headsets"
	case DeviceSpeakers:
		return "speakers"
	default:
		return "unknown"
	}
}

// BaseLevel is the assumed output level in dB at full volume scalar.
func (d DeviceType) BaseLevel() float64 {
	switch d {
	case DeviceHeadphones:
		return 100
	case DeviceEarphones:
		return 102
	case DeviceHeadsets:
		return 98
	case DeviceSpeakers:
		return 90
	default:
		return 95
	}
}

// ClassifyDevice guesses the device type from the endpoint's friendly name.
func ClassifyDevice(friendlyName string) DeviceType {
	name := strings.ToLower(friendlyName)
	switch {
	case strings.Contains(name, "headphone"):
		return DeviceHeadphones
	case strings.Contains(name, "earphone"), strings.Contains(name, "earbud"):
		return DeviceEarphones
	case strings.Contains(name, "headset"):
		return DeviceHeadsets
	case strings.Contains(name, "speaker"):
		return DeviceSpeakers
	default:
		return DeviceUnknown
	}
}

// SilenceFloor is the near-silence peak below which no audio is considered
// audible.
const SilenceFloor = 0.01

// AlertState tracks the per-session one-shot harmful-exposure alert.
type AlertState int

const (
	// AlertNotArmed: the session has never estimated above the harmful
	// threshold.
	AlertNotArmed AlertState = iota
	// AlertArmed: harmful exposure is accruing; the alert has not fired.
	AlertArmed
	// AlertFired: the alert fired. It never fires again for this session
	// and harmful accrual has stopped.
	AlertFired
)

// AudioReading is one sample of the default endpoint's state. Present is
// false when no default audio device exists.
type AudioReading struct {
	Present      bool
	DeviceID     string
	FriendlyName string
	VolumeScalar float64
	PeakLevel    float64
}

// Session is one contiguous run of audible playback on a single device.
// End is zero while the session is open.
type Session struct {
	SessionDate      string
	DeviceID         string
	DeviceName       string
	DeviceType       DeviceType
	Start            time.Time
	End              time.Time
	ListeningSeconds int
	AvgVolume        float64
	EstimatedMaxDB   float64
	WasHarmful       bool
	HarmfulSeconds   int
	Alert            AlertState
}

// Observe folds one audible sample into the session counters and reports
// whether the one-shot alert fired on this sample. The average is a two-point
// decaying smoother, not an arithmetic mean. After the alert has fired,
// harmful accrual stops for the remainder of the session.
func (s *Session) Observe(volume float64, intervalSeconds int, thresholdDB float64, thresholdSeconds int) (fired bool) {
	if s.ListeningSeconds == 0 {
		s.AvgVolume = volume
	} else {
		s.AvgVolume = (s.AvgVolume + volume) / 2
	}
	s.ListeningSeconds += intervalSeconds

	estimated := volume * s.DeviceType.BaseLevel()
	if estimated > s.EstimatedMaxDB {
		s.EstimatedMaxDB = estimated
	}

	if estimated >= thresholdDB && s.Alert != AlertFired {
		s.WasHarmful = true
		s.Alert = AlertArmed
		s.HarmfulSeconds += intervalSeconds
		if s.HarmfulSeconds >= thresholdSeconds {
			s.Alert = AlertFired
			return true
		}
	}
	return false
}

// Close returns a copy of the session with End set.
func (s Session) Close(end time.Time) Session {
	if end.Before(s.Start) {
		end = s.Start
	}
	s.End = end
	return s
}
