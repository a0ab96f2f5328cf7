package in

import (
	"context"

	"dwell/internal/modules/sensor/dto"
)

type Usecase interface {
	// Start connects to the configured provider. The connection stays open
	// until Stop.
	Start(ctx context.Context) error
	Stop()

	// Check validates the manifest and performs a live handshake without
	// keeping the provider running.
	Check(ctx context.Context) (dto.ProviderInfo, error)

	ReadPresence(ctx context.Context, audioThreshold float64) (dto.PresenceOutput, error)
	ReadForeground(ctx context.Context) (dto.ForegroundOutput, error)
	ReadAudio(ctx context.Context) (dto.AudioOutput, error)
}
