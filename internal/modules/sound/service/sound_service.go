package service

import (
	"context"
	"sync"
	"time"

	"cdr.dev/slog/v3"
	"github.com/coder/quartz"

	"dwell/internal/modules/sound/domain"
	soundout "dwell/internal/modules/sound/port/out"
	"dwell/internal/platform/timeutil"
)

type Options struct {
	PollInterval        time.Duration
	CheckpointInterval  time.Duration
	MinListeningSeconds int // checkpoint floor
	SilenceFloor        float64
	ThresholdDB         float64       // harmful exposure level
	ThresholdDuration   time.Duration // harmful accrual before the alert fires
	StoreTimeout        time.Duration
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = 10 * time.Second
	}
	if o.CheckpointInterval <= 0 {
		o.CheckpointInterval = 5 * time.Minute
	}
	if o.MinListeningSeconds <= 0 {
		o.MinListeningSeconds = 30
	}
	if o.SilenceFloor <= 0 {
		o.SilenceFloor = domain.SilenceFloor
	}
	if o.ThresholdDB <= 0 {
		o.ThresholdDB = 85
	}
	if o.ThresholdDuration <= 0 {
		o.ThresholdDuration = 4 * time.Hour
	}
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = 5 * time.Second
	}
	return o
}

// SoundService accumulates audio-exposure sessions keyed by the default
// audio device. Thresholds are fixed at construction; changing them takes a
// new service instance.
type SoundService struct {
	logger slog.Logger
	clock  quartz.Clock
	store  soundout.SessionStore
	audio  soundout.AudioSource
	opts   Options

	mu             sync.Mutex
	started        bool
	stopped        bool
	cancel         context.CancelFunc
	waiter         quartz.Waiter
	open           *domain.Session
	lastCheckpoint time.Time

	alertFns []func(domain.Session)
}

func NewSoundService(logger slog.Logger, clk quartz.Clock, store soundout.SessionStore, audio soundout.AudioSource, opts Options) *SoundService {
	return &SoundService{
		logger: logger,
		clock:  clk,
		store:  store,
		audio:  audio,
		opts:   opts.withDefaults(),
	}
}

func (s *SoundService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.lastCheckpoint = s.clock.Now()
	s.waiter = s.clock.TickerFunc(runCtx, s.opts.PollInterval, func() error {
		s.poll(runCtx)
		return nil
	}, "sound")
	s.started = true
	return nil
}

// Stop closes any open session unconditionally. A persistence error
// propagates.
func (s *SoundService) Stop(ctx context.Context) error {
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
	return s.closeLocked(ctx, s.clock.Now())
}

func (s *SoundService) Snapshot() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open == nil {
		return nil
	}
	session := *s.open
	return &session
}

func (s *SoundService) OnAlert(fn func(domain.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alertFns = append(s.alertFns, fn)
}

// poll is one audio sample evaluation.
func (s *SoundService) poll(ctx context.Context) {
	reading, err := s.audio.Read(ctx)
	if err != nil {
		s.logger.Debug(ctx, "audio read failed", slog.Error(err))
		reading = domain.AudioReading{}
	}

	var alerted *domain.Session

	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	now := s.clock.Now()
	interval := int(s.opts.PollInterval.Seconds())

	switch {
	case !reading.Present:
		// Device removed: end of exposure.
		if err := s.closeLocked(ctx, now); err != nil {
			s.logger.Error(ctx, "close sound session", slog.Error(err))
		}

	case s.open != nil && reading.DeviceID != s.open.DeviceID:
		if err := s.closeLocked(ctx, now); err != nil {
			s.logger.Error(ctx, "close sound session", slog.Error(err))
		}
		s.openLocked(now, reading)

	case s.open != nil && reading.PeakLevel < s.opts.SilenceFloor:
		// Playback stopped: silence ends the session, it is not merely a
		// discarded sample.
		if err := s.closeLocked(ctx, now); err != nil {
			s.logger.Error(ctx, "close sound session", slog.Error(err))
		}
	}

	if reading.Present && reading.PeakLevel >= s.opts.SilenceFloor {
		if s.open == nil {
			s.openLocked(now, reading)
		}
		fired := s.open.Observe(reading.VolumeScalar, interval, s.opts.ThresholdDB, int(s.opts.ThresholdDuration.Seconds()))
		if fired {
			session := *s.open
			alerted = &session
		}

		if now.Sub(s.lastCheckpoint) >= s.opts.CheckpointInterval && s.open.ListeningSeconds >= s.opts.MinListeningSeconds {
			closed := s.open.Close(now)
			if err := s.persist(ctx, closed); err != nil {
				// Keep the session open: the next poll retries with a
				// longer row.
				s.logger.Error(ctx, "checkpoint sound session", slog.Error(err))
			} else {
				s.openLocked(now, domain.AudioReading{
					Present:      true,
					DeviceID:     closed.DeviceID,
					FriendlyName: closed.DeviceName,
				})
				// Harmful accrual and the one-shot alert span the checkpoint
				// chain: the reopened session inherits them so the alert
				// neither resets nor fires twice.
				s.open.HarmfulSeconds = closed.HarmfulSeconds
				s.open.Alert = closed.Alert
				s.lastCheckpoint = now
			}
		}
	}
	alertFns := make([]func(domain.Session), len(s.alertFns))
	copy(alertFns, s.alertFns)
	s.mu.Unlock()

	if alerted != nil {
		for _, fn := range alertFns {
			fn(*alerted)
		}
	}
}

func (s *SoundService) openLocked(now time.Time, reading domain.AudioReading) {
	s.open = &domain.Session{
		SessionDate: timeutil.DayKey(now),
		DeviceID:    reading.DeviceID,
		DeviceName:  reading.FriendlyName,
		DeviceType:  domain.ClassifyDevice(reading.FriendlyName),
		Start:       now,
	}
}

// closeLocked persists and discards the open session. Sessions that never
// saw an audible sample are dropped, not written.
func (s *SoundService) closeLocked(ctx context.Context, now time.Time) error {
	if s.open == nil {
		return nil
	}
	closed := s.open.Close(now)
	s.open = nil
	if closed.ListeningSeconds == 0 {
		return nil
	}
	return s.persist(ctx, closed)
}

func (s *SoundService) persist(ctx context.Context, session domain.Session) error {
	storeCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()
	return s.store.InsertSession(storeCtx, session)
}
