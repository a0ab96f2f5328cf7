package service

import (
	"context"
	"sync"
	"time"

	"cdr.dev/slog/v3"
	"github.com/coder/quartz"

	"dwell/internal/modules/focus/domain"
	focusout "dwell/internal/modules/focus/port/out"
	"dwell/internal/platform/timeutil"
)

type Options struct {
	PollInterval       time.Duration // checkpoint evaluation cadence
	CheckpointInterval time.Duration // minimum gap between checkpoint closes
	MinSessionSeconds  int           // open session must be this old to chain
	IdleIgnore         time.Duration // focus events during deep idle are dropped
	StoreTimeout       time.Duration
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = time.Minute
	}
	if o.CheckpointInterval <= 0 {
		o.CheckpointInterval = 5 * time.Minute
	}
	if o.MinSessionSeconds <= 0 {
		o.MinSessionSeconds = 30
	}
	if o.IdleIgnore <= 0 {
		o.IdleIgnore = 60 * time.Second
	}
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = 5 * time.Second
	}
	return o
}

// FocusService tracks per-application focus sessions. Change notifications
// arrive from the source's goroutine; the checkpoint poll runs on the quartz
// ticker. All state lives behind mu.
type FocusService struct {
	logger slog.Logger
	clock  quartz.Clock
	store  focusout.SessionStore
	source focusout.ChangeSource
	probe  focusout.IdleProbe
	opts   Options

	mu             sync.Mutex
	started        bool
	stopped        bool
	cancel         context.CancelFunc
	waiter         quartz.Waiter
	open           *domain.Session
	lastCheckpoint time.Time

	switchFns []func(domain.FocusTarget)
}

func NewFocusService(logger slog.Logger, clk quartz.Clock, store focusout.SessionStore, source focusout.ChangeSource, probe focusout.IdleProbe, opts Options) *FocusService {
	return &FocusService{
		logger: logger,
		clock:  clk,
		store:  store,
		source: source,
		probe:  probe,
		opts:   opts.withDefaults(),
	}
}

func (s *FocusService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := s.source.Start(runCtx, func(target domain.FocusTarget) {
		s.handleChange(runCtx, target)
	}); err != nil {
		cancel()
		return err
	}
	s.cancel = cancel
	s.lastCheckpoint = s.clock.Now()
	s.waiter = s.clock.TickerFunc(runCtx, s.opts.PollInterval, func() error {
		s.checkpointTick(runCtx)
		return nil
	}, "focus")
	s.started = true
	return nil
}

// Stop unsubscribes and closes the open session unconditionally, even below
// the checkpoint floor. A persistence error propagates.
func (s *FocusService) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	cancel, waiter := s.cancel, s.waiter
	s.mu.Unlock()

	s.source.Stop()
	cancel()
	_ = waiter.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open == nil {
		return nil
	}
	closed := s.open.Close(s.clock.Now())
	s.open = nil
	return s.persist(ctx, closed)
}

func (s *FocusService) Snapshot() (open *domain.Session, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open == nil {
		return nil, 0
	}
	session := *s.open
	return &session, s.clock.Since(session.Start)
}

// OnSwitch registers a callback invoked after focus moves to a new app.
// Callbacks must not block.
func (s *FocusService) OnSwitch(fn func(domain.FocusTarget)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.switchFns = append(s.switchFns, fn)
}

// handleChange applies one focus-change notification.
func (s *FocusService) handleChange(ctx context.Context, target domain.FocusTarget) {
	// Focus flapping during deep idle (screensavers, power events) is noise,
	// not usage.
	if idle, err := s.probe.InputIdle(ctx); err == nil && idle > s.opts.IdleIgnore {
		return
	}

	var notify []func(domain.FocusTarget)

	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	now := s.clock.Now()

	if s.open != nil {
		closed := s.open.Close(now)
		s.open = nil
		if err := s.persist(ctx, closed); err != nil {
			s.logger.Error(ctx, "persist focus session", slog.Error(err), slog.F("app", closed.AppName))
		}
	}
	if target.Present {
		s.open = &domain.Session{
			SessionDate:    timeutil.DayKey(now),
			AppName:        target.AppName,
			ExecutablePath: target.ExecutablePath,
			WindowTitle:    target.WindowTitle,
			Start:          now,
		}
		notify = make([]func(domain.FocusTarget), len(s.switchFns))
		copy(notify, s.switchFns)
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(target)
	}
}

// checkpointTick chains the open session: close it and reopen for the same
// app, so a crash loses at most one checkpoint interval.
func (s *FocusService) checkpointTick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.stopped || s.open == nil {
		return
	}
	now := s.clock.Now()
	if now.Sub(s.lastCheckpoint) < s.opts.CheckpointInterval {
		return
	}
	if now.Sub(s.open.Start) < time.Duration(s.opts.MinSessionSeconds)*time.Second {
		return
	}

	closed := s.open.Close(now)
	if err := s.persist(ctx, closed); err != nil {
		// Keep the session open: the next poll retries with a longer row.
		s.logger.Error(ctx, "checkpoint focus session", slog.Error(err), slog.F("app", closed.AppName))
		return
	}
	s.open = &domain.Session{
		SessionDate:    timeutil.DayKey(now),
		AppName:        closed.AppName,
		ExecutablePath: closed.ExecutablePath,
		WindowTitle:    closed.WindowTitle,
		Start:          now,
	}
	s.lastCheckpoint = now
}

func (s *FocusService) persist(ctx context.Context, session domain.Session) error {
	storeCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()
	return s.store.InsertSession(storeCtx, session)
}
