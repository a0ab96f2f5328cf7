package in

import (
	"context"

	"dwell/internal/modules/screen/dto"
)

type Usecase interface {
	// Start begins the 1 Hz evaluation loop. The loop stops when ctx is
	// canceled or Stop is called.
	Start(ctx context.Context) error
	// Stop checkpoints unconditionally and halts the loop. Idempotent.
	Stop(ctx context.Context) error
	// Pause/Resume follow OS suspend and session lock notifications. Both
	// are idempotent.
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error

	Snapshot() dto.Snapshot
	// OnStateChange registers a callback invoked after each state
	// transition. Callbacks must not block.
	OnStateChange(fn func(state string))
}
