package in

import (
	"context"
	"time"

	"dwell/internal/modules/goal/dto"
)

type Usecase interface {
	// ScreenTimeGoal returns the daily goal in minutes. ok is false when no
	// goal is set.
	ScreenTimeGoal(ctx context.Context) (minutes int, ok bool, err error)
	// SetScreenTimeGoal stores the goal; zero or negative clears it.
	SetScreenTimeGoal(ctx context.Context, minutes int) error

	Status(ctx context.Context, current time.Duration) (dto.Status, error)

	NotificationsEnabled(ctx context.Context) (bool, error)
	SetNotificationsEnabled(ctx context.Context, enabled bool) error

	SoundThresholdDB(ctx context.Context) (float64, error)
	SoundThresholdDuration(ctx context.Context) (time.Duration, error)

	// Invalidate drops cached values so the next read hits the store.
	Invalidate()
	// OnGoalChanged registers a callback invoked after the goal is written.
	OnGoalChanged(fn func())
}
