package out

import (
	"context"
	"time"

	focusout "dwell/internal/modules/focus/port/out"
	sensorin "dwell/internal/modules/sensor/port/in"
)

// SensorIdleProbe answers the input-idle duration from a presence reading.
type SensorIdleProbe struct {
	sensors        sensorin.Usecase
	audioThreshold float64
}

func NewSensorIdleProbe(sensors sensorin.Usecase, audioThreshold float64) focusout.IdleProbe {
	return &SensorIdleProbe{sensors: sensors, audioThreshold: audioThreshold}
}

func (s *SensorIdleProbe) InputIdle(ctx context.Context) (time.Duration, error) {
	reading, err := s.sensors.ReadPresence(ctx, s.audioThreshold)
	if err != nil {
		return 0, err
	}
	return reading.InputIdle, nil
}
