package out

import (
	"context"

	"dwell/internal/modules/screen/domain"
)

// DayStore persists the day aggregate and its segments. Implementations
// assign row identifiers; callers never choose them.
type DayStore interface {
	// LoadDay returns apperrors.ErrNotFound when no row exists for the key.
	LoadDay(ctx context.Context, dayKey string) (domain.DayAggregate, error)
	InsertDay(ctx context.Context, day domain.DayAggregate) error
	// UpdateDay targets the row whose session date matches day.SessionDate.
	UpdateDay(ctx context.Context, day domain.DayAggregate) error
	InsertSegment(ctx context.Context, segment domain.Segment) error
	CountSegments(ctx context.Context, dayKey string) (int, error)
}

// PresenceSource answers the idle/passive-consumption signals. A failing
// source returns an error; the tracker degrades to "user present".
type PresenceSource interface {
	Sample(ctx context.Context) (domain.PresenceSample, error)
}
