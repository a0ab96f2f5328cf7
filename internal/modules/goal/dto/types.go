package dto

import "time"

// Status is the goal-progress view for a given amount of screen time.
type Status struct {
	HasGoal     bool
	GoalMinutes int
	// Progress is a 0-1 fraction of the goal; it exceeds 1 when over.
	Progress  float64
	Remaining time.Duration
	OverGoal  bool
	Text      string
}
