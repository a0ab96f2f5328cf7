package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dwell/internal/modules/goal/domain"
	"dwell/internal/modules/goal/service"
	apperrors "dwell/internal/platform/errors"
)

type fakeSettingStore struct {
	mu     sync.Mutex
	values map[string]string
	gets   int
}

func newFakeSettingStore() *fakeSettingStore {
	return &fakeSettingStore{values: map[string]string{}}
}

func (f *fakeSettingStore) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	value, ok := f.values[key]
	if !ok {
		return "", apperrors.ErrSettingMissing
	}
	return value, nil
}

func (f *fakeSettingStore) Put(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *fakeSettingStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}

func (f *fakeSettingStore) getCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}

func TestGoalCacheAndInvalidate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeSettingStore()
	store.values[domain.KeyScreenTimeGoal] = "120"
	svc := service.NewGoalService(store)

	for i := 0; i < 3; i++ {
		minutes, ok, err := svc.ScreenTimeGoal(ctx)
		if err != nil {
			t.Fatalf("goal: %v", err)
		}
		if !ok || minutes != 120 {
			t.Fatalf("goal = %d/%v, want 120/true", minutes, ok)
		}
	}
	if store.getCount() != 1 {
		t.Fatalf("store reads = %d, want 1 with a warm cache", store.getCount())
	}

	store.values[domain.KeyScreenTimeGoal] = "90"
	svc.Invalidate()
	minutes, _, err := svc.ScreenTimeGoal(ctx)
	if err != nil {
		t.Fatalf("goal: %v", err)
	}
	if minutes != 90 {
		t.Fatalf("goal after invalidate = %d, want 90", minutes)
	}
}

func TestSetGoalClearsAndNotifies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeSettingStore()
	svc := service.NewGoalService(store)

	changed := 0
	svc.OnGoalChanged(func() { changed++ })

	if err := svc.SetScreenTimeGoal(ctx, 150); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	minutes, ok, err := svc.ScreenTimeGoal(ctx)
	if err != nil || !ok || minutes != 150 {
		t.Fatalf("goal = %d/%v/%v, want 150/true/nil", minutes, ok, err)
	}

	// Zero clears the goal entirely.
	if err := svc.SetScreenTimeGoal(ctx, 0); err != nil {
		t.Fatalf("clear goal: %v", err)
	}
	if _, ok, _ := svc.ScreenTimeGoal(ctx); ok {
		t.Fatalf("goal still set after clear")
	}
	if _, found := store.values[domain.KeyScreenTimeGoal]; found {
		t.Fatalf("cleared goal left a settings row")
	}
	if changed != 2 {
		t.Fatalf("change notifications = %d, want 2", changed)
	}
}

func TestUnparseableGoalMeansNoGoal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeSettingStore()
	store.values[domain.KeyScreenTimeGoal] = "not-a-number"
	svc := service.NewGoalService(store)

	if _, ok, err := svc.ScreenTimeGoal(ctx); err != nil || ok {
		t.Fatalf("goal = ok %v err %v, want unset and no error", ok, err)
	}
}

func TestSoundThresholdDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewGoalService(newFakeSettingStore())

	db, err := svc.SoundThresholdDB(ctx)
	if err != nil {
		t.Fatalf("threshold db: %v", err)
	}
	if db != 85.0 {
		t.Fatalf("threshold db = %v, want default 85", db)
	}
	dur, err := svc.SoundThresholdDuration(ctx)
	if err != nil {
		t.Fatalf("threshold duration: %v", err)
	}
	if dur != 4*time.Hour {
		t.Fatalf("threshold duration = %v, want default 4h", dur)
	}

	enabled, err := svc.NotificationsEnabled(ctx)
	if err != nil || !enabled {
		t.Fatalf("notifications = %v/%v, want enabled by default", enabled, err)
	}
}

func TestNotificationsToggleRoundTrips(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeSettingStore()
	svc := service.NewGoalService(store)

	if err := svc.SetNotificationsEnabled(ctx, false); err != nil {
		t.Fatalf("disable notifications: %v", err)
	}
	enabled, err := svc.NotificationsEnabled(ctx)
	if err != nil || enabled {
		t.Fatalf("notifications = %v/%v, want disabled", enabled, err)
	}

	if err := svc.SetNotificationsEnabled(ctx, true); err != nil {
		t.Fatalf("enable notifications: %v", err)
	}
	enabled, err = svc.NotificationsEnabled(ctx)
	if err != nil || !enabled {
		t.Fatalf("notifications = %v/%v, want enabled", enabled, err)
	}

	// Garbage in the row falls back to enabled rather than failing.
	store.values[domain.KeyGoalNotifications] = "maybe"
	enabled, err = svc.NotificationsEnabled(ctx)
	if err != nil || !enabled {
		t.Fatalf("notifications = %v/%v, want enabled on unparseable value", enabled, err)
	}
}

func TestSoundThresholdOverrides(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeSettingStore()
	store.values[domain.KeySoundThresholdDB] = "80.5"
	store.values[domain.KeySoundThresholdMinutes] = "30"
	svc := service.NewGoalService(store)

	db, _ := svc.SoundThresholdDB(ctx)
	if db != 80.5 {
		t.Fatalf("threshold db = %v, want 80.5", db)
	}
	dur, _ := svc.SoundThresholdDuration(ctx)
	if dur != 30*time.Minute {
		t.Fatalf("threshold duration = %v, want 30m", dur)
	}
}
