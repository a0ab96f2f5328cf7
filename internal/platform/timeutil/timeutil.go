package timeutil

import (
	"fmt"
	"time"
)

// DayKeyLayout is the calendar-day key used across all persisted records.
const DayKeyLayout = "2006-01-02"

// StampLayout is the instant encoding used by the store adapters.
const StampLayout = time.RFC3339

func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// FormatStamp encodes an instant for storage.
func FormatStamp(t time.Time) string {
	return t.Format(StampLayout)
}

// ParseStamp decodes a stored instant.
func ParseStamp(s string) (time.Time, error) {
	return time.Parse(StampLayout, s)
}

// SameDay reports whether two instants fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// SecondsDuration converts a persisted second count back to a duration.
func SecondsDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// FormatHoursMinutes renders a duration as H:MM for display surfaces.
func FormatHoursMinutes(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%d:%02d", h, m)
}

// FormatCompact renders a duration as "2h 5m", "5m" or "40s" for labels.
func FormatCompact(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}
