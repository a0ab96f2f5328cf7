package domain

import (
	"fmt"
	"time"
)

// Well-known settings keys.
const (
	KeyScreenTimeGoal        = "ScreenTimeGoal" // daily goal in minutes; absent = no goal
	KeyGoalNotifications     = "GoalNotificationsEnabled"
	KeySoundThresholdDB      = "SoundThresholdDb"      // harmful exposure level
	KeySoundThresholdMinutes = "SoundThresholdMinutes" // harmful accrual before alerting
)

// Defaults applied when a settings key is absent or unparseable.
const (
	DefaultSoundThresholdDB      = 85.0
	DefaultSoundThresholdMinutes = 240
)

// Progress is current screen time over the goal, 0.0 to 1.0 and beyond.
// Zero when no goal is set.
func Progress(current time.Duration, goalMinutes int) float64 {
	if goalMinutes <= 0 {
		return 0
	}
	return current.Minutes() / float64(goalMinutes)
}

// Remaining is the time left until the goal, negative when over it.
func Remaining(current time.Duration, goalMinutes int) time.Duration {
	return time.Duration(goalMinutes)*time.Minute - current
}

// IsOver reports whether current screen time exceeds the goal.
func IsOver(current time.Duration, goalMinutes int) bool {
	return goalMinutes > 0 && current.Minutes() > float64(goalMinutes)
}

// FormatProgressText renders goal progress for display: "64% of 2h goal",
// or "120% - Over goal by 24m" once exceeded. Empty when no goal is set.
func FormatProgressText(current time.Duration, goalMinutes int) string {
	if goalMinutes <= 0 {
		return ""
	}
	progress := Progress(current, goalMinutes)
	percent := int(progress * 100)

	goalHours := goalMinutes / 60
	goalMins := goalMinutes % 60
	goalText := fmt.Sprintf("%dh", goalHours)
	if goalMins > 0 {
		goalText = fmt.Sprintf("%dh %dm", goalHours, goalMins)
	}

	if progress > 1.0 {
		over := current - time.Duration(goalMinutes)*time.Minute
		overHours := int(over.Hours())
		overMins := int(over.Minutes()) % 60
		overText := fmt.Sprintf("%dm", overMins)
		if overHours > 0 {
			overText = fmt.Sprintf("%dh %dm", overHours, overMins)
		}
		return fmt.Sprintf("%d%% - Over goal by %s", percent, overText)
	}
	return fmt.Sprintf("%d%% of %s goal", percent, goalText)
}
