package in

import (
	"context"

	"dwell/internal/modules/sound/dto"
)

type Usecase interface {
	// Start begins the periodic audio poll.
	Start(ctx context.Context) error
	// Stop closes any open session unconditionally. Idempotent.
	Stop(ctx context.Context) error

	Snapshot() dto.Snapshot
	// OnAlert registers a callback for the one-shot harmful-exposure alert.
	// Callbacks must not block.
	OnAlert(fn func(dto.Alert))
}
