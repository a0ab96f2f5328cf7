package out

import (
	"context"
	"time"

	"dwell/internal/modules/focus/domain"
)

// SessionStore persists closed focus sessions. Sessions are append-only;
// a row is never updated after insert.
type SessionStore interface {
	InsertSession(ctx context.Context, session domain.Session) error
}

// ChangeSource delivers focus-change notifications. Start subscribes onChange
// until Stop or context cancellation; notifications arrive on a single
// goroutine, in order.
type ChangeSource interface {
	Start(ctx context.Context, onChange func(domain.FocusTarget)) error
	Stop()
}

// IdleProbe answers how long the user has gone without input. A failing probe
// returns an error; callers treat that as "not idle".
type IdleProbe interface {
	InputIdle(ctx context.Context) (time.Duration, error)
}
