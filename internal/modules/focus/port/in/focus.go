package in

import (
	"context"

	"dwell/internal/modules/focus/dto"
)

type Usecase interface {
	// Start subscribes to focus changes and begins the checkpoint poll.
	Start(ctx context.Context) error
	// Stop unsubscribes and closes any open session unconditionally.
	Stop(ctx context.Context) error

	Snapshot() dto.Snapshot
	// OnSwitch registers a callback invoked after focus moves to a new
	// app. Callbacks must not block.
	OnSwitch(fn func(dto.Switch))
}
