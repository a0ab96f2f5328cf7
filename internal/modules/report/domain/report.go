package domain

import "time"

// Segment is one persisted block of active screen time.
type Segment struct {
	Start           time.Time
	DurationSeconds int
}

// FocusRow is one closed focus session.
type FocusRow struct {
	AppName         string
	Start           time.Time
	End             time.Time
	DurationSeconds int
}

// SoundRow is one closed sound session.
type SoundRow struct {
	DeviceName       string
	DeviceType       string
	Start            time.Time
	End              time.Time
	ListeningSeconds int
	AvgVolume        float64
	EstimatedMaxDB   float64
	WasHarmful       bool
}

// AppTotal is an app's summed focus time for one day.
type AppTotal struct {
	AppName      string
	TotalSeconds int
}
