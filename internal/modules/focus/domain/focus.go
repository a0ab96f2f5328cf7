package domain

import "time"

// FocusTarget is the process identity carried by a focus-change notification.
// Present is false when focus moved to no window (desktop, secure screen).
type FocusTarget struct {
	Present        bool
	ProcessID      int
	AppName        string
	ExecutablePath string
	WindowTitle    string
}

// Session is one contiguous stretch of foreground focus on a single app.
// End is zero while the session is open.
type Session struct {
	SessionDate    string
	AppName        string
	ExecutablePath string
	WindowTitle    string
	Start          time.Time
	End            time.Time
}

// Close returns a copy of the session with End set.
func (s Session) Close(end time.Time) Session {
	if end.Before(s.Start) {
		end = s.Start
	}
	s.End = end
	return s
}

// DurationSeconds is the closed session's length. Zero for an open session.
func (s Session) DurationSeconds() int {
	if s.End.IsZero() {
		return 0
	}
	return int(s.End.Sub(s.Start).Seconds())
}
