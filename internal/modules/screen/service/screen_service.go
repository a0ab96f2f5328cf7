package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"cdr.dev/slog/v3"
	"github.com/coder/quartz"

	"dwell/internal/modules/screen/domain"
	screenout "dwell/internal/modules/screen/port/out"
	apperrors "dwell/internal/platform/errors"
	"dwell/internal/platform/timeutil"
)

// Options tune the evaluation loop. Zero values fall back to defaults.
type Options struct {
	IdleThreshold      time.Duration // no-input window before idle is considered
	CheckpointInterval time.Duration // cadence of durable flushes
	MinSegmentSeconds  int           // segments below this are discarded
	StoreTimeout       time.Duration // bound on any single store call
}

func (o Options) withDefaults() Options {
	if o.IdleThreshold <= 0 {
		o.IdleThreshold = 300 * time.Second
	}
	if o.CheckpointInterval <= 0 {
		o.CheckpointInterval = 5 * time.Minute
	}
	if o.MinSegmentSeconds <= 0 {
		o.MinSegmentSeconds = domain.MinSegmentSeconds
	}
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = 5 * time.Second
	}
	return o
}

// ScreenService is the screen-time state machine. One goroutine (the quartz
// ticker) drives tick; Pause, Resume, Stop and Snapshot may be called from
// other goroutines. All state lives behind mu.
type ScreenService struct {
	logger   slog.Logger
	clock    quartz.Clock
	store    screenout.DayStore
	presence screenout.PresenceSource
	opts     Options

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	waiter  quartz.Waiter

	state             domain.TrackingState
	dayKey            string
	dayAnchor         time.Time
	activeSeconds     int
	segmentStart      time.Time
	segmentSeconds    int
	continuousStart   time.Time
	continuousSeconds int
	sessionCount      int
	idleSince         time.Time
	lastCheckpoint    time.Time

	listeners []func(domain.TrackingState)
}

func NewScreenService(logger slog.Logger, clk quartz.Clock, store screenout.DayStore, presence screenout.PresenceSource, opts Options) *ScreenService {
	return &ScreenService{
		logger:   logger,
		clock:    clk,
		store:    store,
		presence: presence,
		opts:     opts.withDefaults(),
		state:    domain.StateActive,
	}
}

// Start restores today's aggregate (creating it when absent, anchored to the
// machine boot time on first run) and begins the 1 Hz loop.
func (s *ScreenService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	now := s.clock.Now()
	if err := s.restoreDayLocked(ctx, now); err != nil {
		return err
	}
	s.segmentStart = now
	s.segmentSeconds = 0
	s.continuousStart = now
	s.continuousSeconds = 0
	s.lastCheckpoint = now
	s.state = domain.StateActive

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.waiter = s.clock.TickerFunc(runCtx, time.Second, func() error {
		s.tick(runCtx)
		return nil
	}, "screen")
	s.started = true
	return nil
}

// Stop halts the loop and checkpoints unconditionally. Safe to call more than
// once; the final flush happens exactly once.
func (s *ScreenService) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	cancel, waiter := s.cancel, s.waiter
	s.mu.Unlock()

	cancel()
	_ = waiter.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	return errors.Join(
		s.saveDayLocked(ctx, now),
		s.flushSegmentLocked(ctx, now),
	)
}

// Pause follows an OS suspend or session-lock notification. A duplicate call
// is a no-op: the segment is checkpointed exactly once.
func (s *ScreenService) Pause(ctx context.Context) error {
	var notify bool
	s.mu.Lock()
	if !s.started || s.stopped || s.state == domain.StatePaused {
		s.mu.Unlock()
		return nil
	}
	now := s.clock.Now()
	err := errors.Join(
		s.saveDayLocked(ctx, now),
		s.flushSegmentLocked(ctx, now),
	)
	s.state = domain.StatePaused
	notify = true
	s.mu.Unlock()

	if notify {
		s.notifyStateChange(domain.StatePaused)
	}
	return err
}

// Resume follows an OS resume or session-unlock notification. A no-op unless
// currently paused.
func (s *ScreenService) Resume(ctx context.Context) error {
	s.mu.Lock()
	if !s.started || s.stopped || s.state != domain.StatePaused {
		s.mu.Unlock()
		return nil
	}
	now := s.clock.Now()
	s.rolloverLocked(ctx, now)
	s.resetSessionLocked(now)
	s.sessionCount++
	s.idleSince = time.Time{}
	s.state = domain.StateActive
	s.mu.Unlock()

	s.notifyStateChange(domain.StateActive)
	return nil
}

func (s *ScreenService) Snapshot() (domain.TrackingState, domain.DayAggregate, SessionCounters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := domain.DayAggregate{
		SessionDate:    s.dayKey,
		DayAnchor:      s.dayAnchor,
		LastCheckpoint: s.lastCheckpoint,
		ActiveSeconds:  s.activeSeconds,
	}
	counters := SessionCounters{
		SegmentStart:      s.segmentStart,
		SegmentSeconds:    s.segmentSeconds,
		ContinuousStart:   s.continuousStart,
		ContinuousSeconds: s.continuousSeconds,
		SessionCount:      s.sessionCount,
	}
	return s.state, day, counters
}

// SessionCounters is the live, not-yet-persisted part of a snapshot.
type SessionCounters struct {
	SegmentStart      time.Time
	SegmentSeconds    int
	ContinuousStart   time.Time
	ContinuousSeconds int
	SessionCount      int
}

func (s *ScreenService) OnStateChange(fn func(domain.TrackingState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// tick is the 1 Hz evaluation. It never returns an error: persistence
// failures are logged and in-memory accounting continues untouched.
func (s *ScreenService) tick(ctx context.Context) {
	var notify *domain.TrackingState

	s.mu.Lock()
	if !s.started || s.stopped || s.state == domain.StatePaused {
		s.mu.Unlock()
		return
	}
	now := s.clock.Now()
	s.rolloverLocked(ctx, now)

	sample, err := s.presence.Sample(ctx)
	if err != nil {
		// Signal loss never stops counting: degrade to "user present".
		s.logger.Debug(ctx, "presence sample failed", slog.Error(err))
		sample = domain.PresenceSample{}
	}

	if sample.TrulyIdle(s.opts.IdleThreshold) {
		if s.state != domain.StateIdle {
			if s.idleSince.IsZero() {
				s.idleSince = now
			}
			if s.state == domain.StateActive {
				if err := s.saveDayLocked(ctx, now); err != nil {
					s.logger.Error(ctx, "checkpoint day aggregate", slog.Error(err))
				}
				if err := s.flushSegmentLocked(ctx, now); err != nil {
					s.logger.Error(ctx, "flush segment", slog.Error(err))
				}
			}
			s.state = domain.StateIdle
			state := domain.StateIdle
			notify = &state
		}
	} else {
		if s.state == domain.StateIdle {
			s.resetSessionLocked(now)
			s.sessionCount++
			s.idleSince = time.Time{}
			s.state = domain.StateActive
			state := domain.StateActive
			notify = &state
		}
		s.activeSeconds++
		s.segmentSeconds++
		s.continuousSeconds++
	}

	if now.Sub(s.lastCheckpoint) >= s.opts.CheckpointInterval {
		if err := s.saveDayLocked(ctx, now); err != nil {
			s.logger.Error(ctx, "checkpoint day aggregate", slog.Error(err))
		}
		if s.segmentSeconds >= s.opts.MinSegmentSeconds {
			if err := s.flushSegmentLocked(ctx, now); err != nil {
				s.logger.Error(ctx, "flush segment", slog.Error(err))
			}
		}
		s.lastCheckpoint = now
	}
	s.mu.Unlock()

	if notify != nil {
		s.notifyStateChange(*notify)
	}
}

// rolloverLocked detects a calendar-day change, flushes the outgoing day and
// opens the new one with zeroed counters.
func (s *ScreenService) rolloverLocked(ctx context.Context, now time.Time) {
	todayKey := timeutil.DayKey(now)
	if todayKey == s.dayKey {
		return
	}
	if err := s.saveDayLocked(ctx, now); err != nil {
		s.logger.Error(ctx, "save outgoing day", slog.Error(err))
	}
	if err := s.flushSegmentLocked(ctx, now); err != nil {
		s.logger.Error(ctx, "flush outgoing segment", slog.Error(err))
	}

	s.dayKey = todayKey
	s.dayAnchor = now
	s.activeSeconds = 0
	s.resetSessionLocked(now)
	s.sessionCount = 1
	s.lastCheckpoint = now

	day := domain.DayAggregate{
		SessionDate:    todayKey,
		DayAnchor:      now,
		LastCheckpoint: now,
		ActiveSeconds:  0,
	}
	storeCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()
	if err := s.store.InsertDay(storeCtx, day); err != nil {
		s.logger.Error(ctx, "insert new day", slog.Error(err))
	}
}

// resetSessionLocked opens fresh segment and continuous-session windows.
func (s *ScreenService) resetSessionLocked(now time.Time) {
	s.segmentStart = now
	s.segmentSeconds = 0
	s.continuousStart = now
	s.continuousSeconds = 0
}

// restoreDayLocked loads today's aggregate or creates it. On first run the
// anchor is pre-dated to machine boot so "day started" reflects power-on.
func (s *ScreenService) restoreDayLocked(ctx context.Context, now time.Time) error {
	todayKey := timeutil.DayKey(now)
	storeCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	day, err := s.store.LoadDay(storeCtx, todayKey)
	switch {
	case err == nil:
		s.dayKey = day.SessionDate
		s.dayAnchor = day.DayAnchor
		s.activeSeconds = day.ActiveSeconds
	case errors.Is(err, apperrors.ErrNotFound):
		anchor := now
		if sample, serr := s.presence.Sample(ctx); serr == nil && sample.Uptime > 0 {
			anchor = now.Add(-sample.Uptime)
			if !timeutil.SameDay(anchor, now) {
				anchor = now
			}
		}
		day = domain.DayAggregate{
			SessionDate:    todayKey,
			DayAnchor:      anchor,
			LastCheckpoint: now,
			ActiveSeconds:  0,
		}
		if err := s.store.InsertDay(storeCtx, day); err != nil {
			return err
		}
		s.dayKey = todayKey
		s.dayAnchor = anchor
		s.activeSeconds = 0
	default:
		return err
	}

	count, err := s.store.CountSegments(storeCtx, todayKey)
	if err != nil || count < 1 {
		count = 1
	}
	s.sessionCount = count
	return nil
}

func (s *ScreenService) saveDayLocked(ctx context.Context, now time.Time) error {
	storeCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()
	return s.store.UpdateDay(storeCtx, domain.DayAggregate{
		SessionDate:    s.dayKey,
		DayAnchor:      s.dayAnchor,
		LastCheckpoint: now,
		ActiveSeconds:  s.activeSeconds,
	})
}

// flushSegmentLocked persists the current segment when it clears the floor and
// opens a fresh segment window. The window is reset only on success so a
// failed write is retried, longer, at the next boundary. The continuous
// session is deliberately untouched.
func (s *ScreenService) flushSegmentLocked(ctx context.Context, now time.Time) error {
	if s.segmentSeconds < s.opts.MinSegmentSeconds {
		return nil
	}
	segment := domain.Segment{
		SessionDate:     timeutil.DayKey(s.segmentStart),
		Start:           s.segmentStart,
		DurationSeconds: s.segmentSeconds,
	}
	storeCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()
	if err := s.store.InsertSegment(storeCtx, segment); err != nil {
		return err
	}
	s.segmentStart = now
	s.segmentSeconds = 0
	return nil
}

func (s *ScreenService) notifyStateChange(state domain.TrackingState) {
	s.mu.Lock()
	listeners := make([]func(domain.TrackingState), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(state)
	}
}
