package out

import (
	"context"

	"dwell/internal/modules/sound/domain"
)

// SessionStore persists closed sound sessions, append-only.
type SessionStore interface {
	InsertSession(ctx context.Context, session domain.Session) error
}

// AudioSource samples the default audio endpoint. A reading with Present
// false means no default device exists; an error means the source itself
// could not answer.
type AudioSource interface {
	Read(ctx context.Context) (domain.AudioReading, error)
}
