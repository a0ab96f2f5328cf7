package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	focusout "dwell/internal/modules/focus/adapter/out"
	focusdomain "dwell/internal/modules/focus/domain"
	reportout "dwell/internal/modules/report/adapter/out"
	reportport "dwell/internal/modules/report/port/out"
	screenout "dwell/internal/modules/screen/adapter/out"
	screendomain "dwell/internal/modules/screen/domain"
	soundout "dwell/internal/modules/sound/adapter/out"
	sounddomain "dwell/internal/modules/sound/domain"
	"dwell/internal/platform/storage"
)

func seedDatabase(t *testing.T) reportport.HistoryStore {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "dwell.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	dayStore, err := screenout.NewSQLiteDayStore(db)
	if err != nil {
		t.Fatalf("day store: %v", err)
	}
	focusStore, err := focusout.NewSQLiteSessionStore(db)
	if err != nil {
		t.Fatalf("focus store: %v", err)
	}
	soundStore, err := soundout.NewSQLiteSessionStore(db)
	if err != nil {
		t.Fatalf("sound store: %v", err)
	}

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := dayStore.InsertDay(ctx, screendomain.DayAggregate{
		SessionDate:    "2024-03-01",
		DayAnchor:      base,
		LastCheckpoint: base.Add(time.Hour),
		ActiveSeconds:  0,
	}); err != nil {
		t.Fatalf("insert day: %v", err)
	}
	if err := dayStore.UpdateDay(ctx, screendomain.DayAggregate{
		SessionDate:    "2024-03-01",
		LastCheckpoint: base.Add(time.Hour),
		ActiveSeconds:  3600,
	}); err != nil {
		t.Fatalf("update day: %v", err)
	}
	if err := dayStore.InsertSegment(ctx, screendomain.Segment{
		SessionDate:     "2024-03-01",
		Start:           base,
		DurationSeconds: 3600,
	}); err != nil {
		t.Fatalf("insert segment: %v", err)
	}

	focusRows := []struct {
		app     string
		seconds int
	}{
		{"editor", 1800},
		{"browser", 900},
		{"editor", 600},
		{"terminal", 300},
	}
	offset := base
	for _, row := range focusRows {
		end := offset.Add(time.Duration(row.seconds) * time.Second)
		if err := focusStore.InsertSession(ctx, focusdomain.Session{
			SessionDate:    "2024-03-01",
			AppName:        row.app,
			ExecutablePath: "/usr/bin/" + row.app,
			WindowTitle:    row.app,
			Start:          offset,
			End:            end,
		}); err != nil {
			t.Fatalf("insert focus session: %v", err)
		}
		offset = end
	}

	if err := soundStore.InsertSession(ctx, sounddomain.Session{
		SessionDate:      "2024-03-01",
		DeviceID:         "dev-1",
		DeviceName:       "USB Headphones",
		DeviceType:       sounddomain.DeviceHeadphones,
		Start:            base,
		End:              base.Add(20 * time.Minute),
		ListeningSeconds: 1200,
		AvgVolume:        0.6,
		EstimatedMaxDB:   88,
		WasHarmful:       true,
		HarmfulSeconds:   300,
	}); err != nil {
		t.Fatalf("insert sound session: %v", err)
	}

	return reportout.NewSQLiteHistoryReader(db)
}

func TestDayTotals(t *testing.T) {
	t.Parallel()
	reader := seedDatabase(t)
	ctx := context.Background()

	screen, err := reader.ActiveSecondsForDate(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("screen total: %v", err)
	}
	if screen != 3600 {
		t.Fatalf("screen seconds = %d, want 3600", screen)
	}

	focus, err := reader.FocusSecondsForDate(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("focus total: %v", err)
	}
	if focus != 3600 {
		t.Fatalf("focus seconds = %d, want 3600", focus)
	}

	sound, err := reader.ListeningSecondsForDate(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("sound total: %v", err)
	}
	if sound != 1200 {
		t.Fatalf("sound seconds = %d, want 1200", sound)
	}

	// A day with no rows is all zeros, not an error.
	screen, err = reader.ActiveSecondsForDate(ctx, "2024-03-02")
	if err != nil || screen != 0 {
		t.Fatalf("missing day = %d/%v, want 0/nil", screen, err)
	}
}

func TestTopAppsAggregatesAndOrders(t *testing.T) {
	t.Parallel()
	reader := seedDatabase(t)
	ctx := context.Background()

	apps, err := reader.TopAppsForDate(ctx, "2024-03-01", 2)
	if err != nil {
		t.Fatalf("top apps: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("top apps = %d entries, want 2", len(apps))
	}
	if apps[0].AppName != "editor" || apps[0].TotalSeconds != 2400 {
		t.Fatalf("top app = %s/%d, want editor/2400", apps[0].AppName, apps[0].TotalSeconds)
	}
	if apps[1].AppName != "browser" || apps[1].TotalSeconds != 900 {
		t.Fatalf("second app = %s/%d, want browser/900", apps[1].AppName, apps[1].TotalSeconds)
	}
}

func TestSessionsForDate(t *testing.T) {
	t.Parallel()
	reader := seedDatabase(t)
	ctx := context.Background()

	segments, err := reader.SegmentsForDate(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("segments: %v", err)
	}
	if len(segments) != 1 || segments[0].DurationSeconds != 3600 {
		t.Fatalf("segments = %+v, want one 3600s row", segments)
	}

	focus, err := reader.FocusSessionsForDate(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("focus sessions: %v", err)
	}
	if len(focus) != 4 {
		t.Fatalf("focus sessions = %d, want 4", len(focus))
	}
	if focus[0].AppName != "editor" || focus[0].DurationSeconds != 1800 {
		t.Fatalf("first focus session = %s/%d, want editor/1800", focus[0].AppName, focus[0].DurationSeconds)
	}

	sound, err := reader.SoundSessionsForDate(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("sound sessions: %v", err)
	}
	if len(sound) != 1 {
		t.Fatalf("sound sessions = %d, want 1", len(sound))
	}
	if !sound[0].WasHarmful || sound[0].EstimatedMaxDB != 88 {
		t.Fatalf("sound session = %+v, want harmful at 88dB", sound[0])
	}
}
