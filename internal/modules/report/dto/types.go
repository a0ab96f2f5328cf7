package dto

import "time"

type AppEntry struct {
	AppName string
	Seconds int
	Text    string // compact duration, e.g. "1h 20m"
}

type SegmentEntry struct {
	Start   time.Time
	Seconds int
}

type FocusEntry struct {
	AppName string
	Start   time.Time
	End     time.Time
	Seconds int
}

type SoundEntry struct {
	DeviceName     string
	DeviceType     string
	Start          time.Time
	End            time.Time
	Seconds        int
	EstimatedMaxDB float64
	WasHarmful     bool
}

// DayReport aggregates one day across all three trackers.
type DayReport struct {
	Date          string
	ScreenSeconds int
	ScreenText    string // H:MM
	FocusSeconds  int
	FocusText     string
	SoundSeconds  int
	SoundText     string
	TopApps       []AppEntry
	Segments      []SegmentEntry
	FocusSessions []FocusEntry
	SoundSessions []SoundEntry
}
