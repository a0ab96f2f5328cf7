package dto

import "time"

// Snapshot is an immutable copy of the tracker's counters, safe to hand to
// another goroutine.
type Snapshot struct {
	State             string
	SessionDate       string
	DayAnchor         time.Time
	ActiveSeconds     int
	SegmentStart      time.Time
	SegmentSeconds    int
	ContinuousStart   time.Time
	ContinuousSeconds int
	SessionCount      int
}
