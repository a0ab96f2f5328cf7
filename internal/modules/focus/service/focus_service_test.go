package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cdr.dev/slog/v3/sloggers/slogtest"
	"github.com/coder/quartz"

	"dwell/internal/modules/focus/domain"
	"dwell/internal/modules/focus/service"
)

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions []domain.Session
	fail     bool
}

func (f *fakeSessionStore) InsertSession(_ context.Context, session domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("disk full")
	}
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeSessionStore) all() []domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Session, len(f.sessions))
	copy(out, f.sessions)
	return out
}

type fakeChangeSource struct {
	mu       sync.Mutex
	onChange func(domain.FocusTarget)
	stopped  bool
}

func (f *fakeChangeSource) Start(_ context.Context, onChange func(domain.FocusTarget)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = onChange
	return nil
}

func (f *fakeChangeSource) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeChangeSource) emit(target domain.FocusTarget) {
	f.mu.Lock()
	fn := f.onChange
	f.mu.Unlock()
	fn(target)
}

type fakeIdleProbe struct {
	mu   sync.Mutex
	idle time.Duration
	err  error
}

func (f *fakeIdleProbe) InputIdle(context.Context) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.idle, f.err
}

func (f *fakeIdleProbe) set(idle time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idle = idle
}

func newService(t *testing.T, clock quartz.Clock, store *fakeSessionStore, source *fakeChangeSource, probe *fakeIdleProbe, opts service.Options) *service.FocusService {
	t.Helper()
	logger := slogtest.Make(t, &slogtest.Options{IgnoreErrors: true})
	return service.NewFocusService(logger, clock, store, source, probe, opts)
}

func target(app string, pid int) domain.FocusTarget {
	return domain.FocusTarget{
		Present:        true,
		ProcessID:      pid,
		AppName:        app,
		ExecutablePath: "/usr/bin/" + app,
		WindowTitle:    app + " window",
	}
}

func TestCheckpointChainsOpenSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := quartz.NewMock(t)
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	clock.Set(start)
	store := &fakeSessionStore{}
	source := &fakeChangeSource{}
	probe := &fakeIdleProbe{}

	svc := newService(t, clock, store, source, probe, service.Options{})
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer svc.Stop(ctx)

	source.emit(target("app.exe", 101))
	for i := 0; i < 6; i++ {
		clock.Advance(time.Minute).MustWait(ctx)
	}

	sessions := store.all()
	if len(sessions) != 1 {
		t.Fatalf("persisted sessions = %d, want 1", len(sessions))
	}
	if got := sessions[0].DurationSeconds(); got != 300 {
		t.Fatalf("chained session duration = %ds, want 300", got)
	}
	if !sessions[0].Start.Equal(start) {
		t.Fatalf("chained session start = %v, want %v", sessions[0].Start, start)
	}

	open, _ := svc.Snapshot()
	if open == nil {
		t.Fatalf("no open session after checkpoint")
	}
	if open.AppName != "app.exe" {
		t.Fatalf("open app = %s, want app.exe", open.AppName)
	}
	if !open.Start.Equal(start.Add(5 * time.Minute)) {
		t.Fatalf("reopened start = %v, want %v", open.Start, start.Add(5*time.Minute))
	}
}

func TestFocusChangeClosesAndOpens(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	store := &fakeSessionStore{}
	source := &fakeChangeSource{}
	probe := &fakeIdleProbe{}

	svc := newService(t, clock, store, source, probe, service.Options{})
	var switches []string
	var switchMu sync.Mutex
	svc.OnSwitch(func(target domain.FocusTarget) {
		switchMu.Lock()
		switches = append(switches, target.AppName)
		switchMu.Unlock()
	})
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer svc.Stop(ctx)

	source.emit(target("editor", 10))
	clock.Advance(time.Minute).MustWait(ctx)
	clock.Advance(30 * time.Second).MustWait(ctx)
	source.emit(target("browser", 20))

	sessions := store.all()
	if len(sessions) != 1 {
		t.Fatalf("persisted sessions = %d, want 1", len(sessions))
	}
	if sessions[0].AppName != "editor" || sessions[0].DurationSeconds() != 90 {
		t.Fatalf("closed session = %s/%ds, want editor/90s", sessions[0].AppName, sessions[0].DurationSeconds())
	}
	open, _ := svc.Snapshot()
	if open == nil || open.AppName != "browser" {
		t.Fatalf("open session = %+v, want browser", open)
	}

	// Focus moving to no window closes without opening.
	clock.Advance(30 * time.Second).MustWait(ctx)
	source.emit(domain.FocusTarget{})
	sessions = store.all()
	if len(sessions) != 2 {
		t.Fatalf("persisted sessions = %d, want 2", len(sessions))
	}
	if open, _ := svc.Snapshot(); open != nil {
		t.Fatalf("open session = %+v, want none", open)
	}

	// Subscribers hear each app gaining focus, but not focus moving to none.
	switchMu.Lock()
	defer switchMu.Unlock()
	if len(switches) != 2 || switches[0] != "editor" || switches[1] != "browser" {
		t.Fatalf("switch notifications = %v, want [editor browser]", switches)
	}
}

func TestDeepIdleEventsAreIgnored(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	store := &fakeSessionStore{}
	source := &fakeChangeSource{}
	probe := &fakeIdleProbe{}

	svc := newService(t, clock, store, source, probe, service.Options{})
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer svc.Stop(ctx)

	source.emit(target("editor", 10))
	probe.set(2 * time.Minute)
	clock.Advance(time.Minute).MustWait(ctx)
	source.emit(target("screensaver", 99))

	if len(store.all()) != 0 {
		t.Fatalf("idle-period change persisted a session")
	}
	open, _ := svc.Snapshot()
	if open == nil || open.AppName != "editor" {
		t.Fatalf("open session = %+v, want editor untouched", open)
	}
}

func TestCheckpointSkipsYoungSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := quartz.NewMock(t)
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	clock.Set(start)
	store := &fakeSessionStore{}
	source := &fakeChangeSource{}
	probe := &fakeIdleProbe{}

	svc := newService(t, clock, store, source, probe, service.Options{})
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer svc.Stop(ctx)

	// Open a session 10 seconds before the five-minute mark: the interval
	// has elapsed but the session is too young to chain.
	for i := 0; i < 4; i++ {
		clock.Advance(time.Minute).MustWait(ctx)
	}
	clock.Advance(50 * time.Second).MustWait(ctx)
	source.emit(target("editor", 10))
	clock.Advance(10 * time.Second).MustWait(ctx)

	if len(store.all()) != 0 {
		t.Fatalf("young session was chained")
	}

	// One more minute and the next poll chains it.
	clock.Advance(time.Minute).MustWait(ctx)
	sessions := store.all()
	if len(sessions) != 1 {
		t.Fatalf("persisted sessions = %d, want 1", len(sessions))
	}
	if got := sessions[0].DurationSeconds(); got != 70 {
		t.Fatalf("chained session duration = %ds, want 70", got)
	}
}

func TestStopPersistsShortSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	store := &fakeSessionStore{}
	source := &fakeChangeSource{}
	probe := &fakeIdleProbe{}

	svc := newService(t, clock, store, source, probe, service.Options{})
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	source.emit(target("editor", 10))
	clock.Advance(5 * time.Second).MustWait(ctx)
	if err := svc.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	sessions := store.all()
	if len(sessions) != 1 {
		t.Fatalf("persisted sessions = %d, want 1 on stop", len(sessions))
	}
	if got := sessions[0].DurationSeconds(); got != 5 {
		t.Fatalf("stopped session duration = %ds, want 5", got)
	}
	source.mu.Lock()
	defer source.mu.Unlock()
	if !source.stopped {
		t.Fatalf("source was not unsubscribed")
	}
}

func TestCheckpointFailureKeepsSessionOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := quartz.NewMock(t)
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	clock.Set(start)
	store := &fakeSessionStore{fail: true}
	source := &fakeChangeSource{}
	probe := &fakeIdleProbe{}

	svc := newService(t, clock, store, source, probe, service.Options{})
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer svc.Stop(ctx)

	source.emit(target("editor", 10))
	for i := 0; i < 6; i++ {
		clock.Advance(time.Minute).MustWait(ctx)
	}

	open, _ := svc.Snapshot()
	if open == nil {
		t.Fatalf("session dropped on persist failure")
	}
	if !open.Start.Equal(start) {
		t.Fatalf("open start = %v, want original %v", open.Start, start)
	}

	// Once writes recover, the next poll closes the full span.
	store.mu.Lock()
	store.fail = false
	store.mu.Unlock()
	clock.Advance(time.Minute).MustWait(ctx)
	sessions := store.all()
	if len(sessions) != 1 {
		t.Fatalf("persisted sessions = %d, want 1 after recovery", len(sessions))
	}
	if got := sessions[0].DurationSeconds(); got != 420 {
		t.Fatalf("recovered session duration = %ds, want 420", got)
	}
}
