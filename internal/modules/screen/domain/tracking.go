package domain

import "time"

// TrackingState is the screen tracker's activity state.
type TrackingState int

const (
	// StateActive counts time: the user gave input recently, or is plausibly
	// watching or listening to something.
	StateActive TrackingState = iota
	// StateIdle stops counting: no input past the idle threshold and no
	// passive consumption signal.
	StateIdle
	// StatePaused stops counting on an explicit host call (OS suspend or
	// session lock). Only an explicit Resume leaves it.
	StatePaused
)

func (s TrackingState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateIdle:
		return "idle"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// PresenceSample is one reading of the "is the user here" signals.
type PresenceSample struct {
	InputIdle      time.Duration
	AudioRendering bool
	FullscreenApp  bool
	Uptime         time.Duration
}

// TrulyIdle reports whether the user is idle past threshold with no passive
// consumption. Audio playback or a fullscreen foreground app keeps the user
// counted as present even without input.
func (p PresenceSample) TrulyIdle(threshold time.Duration) bool {
	return p.InputIdle > threshold && !p.AudioRendering && !p.FullscreenApp
}

// DayAggregate is the one-per-calendar-day screen time row.
type DayAggregate struct {
	SessionDate    string
	DayAnchor      time.Time
	LastCheckpoint time.Time
	ActiveSeconds  int
}

// Segment is one persisted contiguous block of active time, bounded by
// checkpoint or state-transition boundaries. Immutable once written.
type Segment struct {
	SessionDate     string
	Start           time.Time
	DurationSeconds int
}

// MinSegmentSeconds is the persistence floor: shorter segments are discarded,
// never written.
const MinSegmentSeconds = 30

// Persistable reports whether the segment clears the floor.
func (s Segment) Persistable() bool {
	return s.DurationSeconds >= MinSegmentSeconds
}
