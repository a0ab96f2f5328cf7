package dto

import "time"

// Switch describes the app that just gained focus.
type Switch struct {
	AppName        string
	ExecutablePath string
	WindowTitle    string
}

// Snapshot describes the currently open focus session, if any.
type Snapshot struct {
	Active         bool
	AppName        string
	ExecutablePath string
	WindowTitle    string
	Start          time.Time
	Seconds        int
}
