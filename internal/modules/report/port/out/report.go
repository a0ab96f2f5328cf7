package out

import (
	"context"

	"dwell/internal/modules/report/domain"
)

// HistoryStore answers read-only aggregation queries over the persisted
// tracking records. Absent days yield zero values, not errors.
type HistoryStore interface {
	ActiveSecondsForDate(ctx context.Context, dayKey string) (int, error)
	FocusSecondsForDate(ctx context.Context, dayKey string) (int, error)
	ListeningSecondsForDate(ctx context.Context, dayKey string) (int, error)

	SegmentsForDate(ctx context.Context, dayKey string) ([]domain.Segment, error)
	FocusSessionsForDate(ctx context.Context, dayKey string) ([]domain.FocusRow, error)
	SoundSessionsForDate(ctx context.Context, dayKey string) ([]domain.SoundRow, error)

	TopAppsForDate(ctx context.Context, dayKey string, limit int) ([]domain.AppTotal, error)
}
