package out

import (
	"context"

	"dwell/internal/modules/sensor/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) (domain.Manifest, error)
}

// Host launches and talks to a provider process. One connection is held open
// for the lifetime of the engine; the polling cadence is far too hot to pay a
// process launch per call.
type Host interface {
	Connect(ctx context.Context, manifest domain.Manifest) (Conn, error)
}

type Conn interface {
	Metadata(ctx context.Context) (domain.Metadata, error)
	ReadPresence(ctx context.Context, audioThreshold float64) (domain.PresenceReading, error)
	ReadForeground(ctx context.Context) (domain.ForegroundReading, error)
	ReadAudio(ctx context.Context) (domain.AudioReading, error)
	Close()
}
