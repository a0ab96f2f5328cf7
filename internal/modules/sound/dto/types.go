package dto

import "time"

// Snapshot describes the currently open sound session, if any.
type Snapshot struct {
	Active           bool
	DeviceName       string
	DeviceType       string
	Start            time.Time
	ListeningSeconds int
	AvgVolume        float64
	EstimatedMaxDB   float64
	WasHarmful       bool
	HarmfulSeconds   int
	AlertFired       bool
}

// Alert is the payload delivered to harmful-exposure subscribers.
type Alert struct {
	DeviceName     string
	EstimatedMaxDB float64
	HarmfulSeconds int
}
