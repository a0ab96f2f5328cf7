package out

import (
	"context"
	"sync"
	"time"

	"cdr.dev/slog/v3"
	"github.com/coder/quartz"

	"dwell/internal/modules/focus/domain"
	focusout "dwell/internal/modules/focus/port/out"
	sensorin "dwell/internal/modules/sensor/port/in"
)

// SensorForegroundSource synthesizes focus-change notifications by polling
// the sensor provider's foreground reading and diffing process identity.
// A read failure is skipped, not reported as "no focus": transient provider
// hiccups must not close a real session.
type SensorForegroundSource struct {
	logger  slog.Logger
	clock   quartz.Clock
	sensors sensorin.Usecase
	poll    time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	waiter  quartz.Waiter
	running bool

	lastPID     int
	lastApp     string
	lastPresent bool
}

func NewSensorForegroundSource(logger slog.Logger, clk quartz.Clock, sensors sensorin.Usecase, poll time.Duration) focusout.ChangeSource {
	if poll <= 0 {
		poll = time.Second
	}
	return &SensorForegroundSource{logger: logger, clock: clk, sensors: sensors, poll: poll}
}

func (s *SensorForegroundSource) Start(ctx context.Context, onChange func(domain.FocusTarget)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.waiter = s.clock.TickerFunc(runCtx, s.poll, func() error {
		s.observe(runCtx, onChange)
		return nil
	}, "foreground")
	s.running = true
	return nil
}

func (s *SensorForegroundSource) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, waiter := s.cancel, s.waiter
	s.mu.Unlock()

	cancel()
	_ = waiter.Wait()
}

func (s *SensorForegroundSource) observe(ctx context.Context, onChange func(domain.FocusTarget)) {
	reading, err := s.sensors.ReadForeground(ctx)
	if err != nil {
		s.logger.Debug(ctx, "foreground read failed", slog.Error(err))
		return
	}

	s.mu.Lock()
	changed := reading.Present != s.lastPresent ||
		(reading.Present && (reading.ProcessID != s.lastPID || reading.AppName != s.lastApp))
	if changed {
		s.lastPresent = reading.Present
		s.lastPID = reading.ProcessID
		s.lastApp = reading.AppName
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	onChange(domain.FocusTarget{
		Present:        reading.Present,
		ProcessID:      reading.ProcessID,
		AppName:        reading.AppName,
		ExecutablePath: reading.ExecutablePath,
		WindowTitle:    reading.WindowTitle,
	})
}
