package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	screenout "dwell/internal/modules/screen/adapter/out"
	"dwell/internal/modules/screen/domain"
	apperrors "dwell/internal/platform/errors"
	"dwell/internal/platform/storage"
)

func TestDayStoreRoundTrip(t *testing.T) {
	t.Parallel()
	db, err := storage.Open(filepath.Join(t.TempDir(), "dwell.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	store, err := screenout.NewSQLiteDayStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.LoadDay(ctx, "2024-03-01"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("load missing day: err = %v, want ErrNotFound", err)
	}

	anchor := time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC)
	day := domain.DayAggregate{
		SessionDate:    "2024-03-01",
		DayAnchor:      anchor,
		LastCheckpoint: anchor,
		ActiveSeconds:  0,
	}
	if err := store.InsertDay(ctx, day); err != nil {
		t.Fatalf("insert day: %v", err)
	}
	// Inserting the same date again is a no-op, not an error.
	if err := store.InsertDay(ctx, day); err != nil {
		t.Fatalf("re-insert day: %v", err)
	}

	day.ActiveSeconds = 312
	day.LastCheckpoint = anchor.Add(10 * time.Minute)
	if err := store.UpdateDay(ctx, day); err != nil {
		t.Fatalf("update day: %v", err)
	}

	got, err := store.LoadDay(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("load day: %v", err)
	}
	if got.ActiveSeconds != 312 {
		t.Fatalf("active seconds = %d, want 312", got.ActiveSeconds)
	}
	if !got.DayAnchor.Equal(anchor) {
		t.Fatalf("anchor = %v, want %v", got.DayAnchor, anchor)
	}
	if !got.LastCheckpoint.Equal(day.LastCheckpoint) {
		t.Fatalf("checkpoint = %v, want %v", got.LastCheckpoint, day.LastCheckpoint)
	}
}

func TestSegmentCountByDay(t *testing.T) {
	t.Parallel()
	db, err := storage.Open(filepath.Join(t.TempDir(), "dwell.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	store, err := screenout.NewSQLiteDayStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seg := domain.Segment{
			SessionDate:     "2024-03-01",
			Start:           start.Add(time.Duration(i) * time.Hour),
			DurationSeconds: 60,
		}
		if err := store.InsertSegment(ctx, seg); err != nil {
			t.Fatalf("insert segment: %v", err)
		}
	}
	if err := store.InsertSegment(ctx, domain.Segment{
		SessionDate:     "2024-03-02",
		Start:           start.Add(24 * time.Hour),
		DurationSeconds: 45,
	}); err != nil {
		t.Fatalf("insert segment: %v", err)
	}

	count, err := store.CountSegments(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("count segments: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}
