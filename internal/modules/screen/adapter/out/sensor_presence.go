package out

import (
	"context"

	"dwell/internal/modules/screen/domain"
	screenout "dwell/internal/modules/screen/port/out"
	sensorin "dwell/internal/modules/sensor/port/in"
)

// SensorPresenceSource feeds the screen tracker from the sensor provider.
// The audio-rendering judgment is made provider-side against this threshold.
type SensorPresenceSource struct {
	sensors        sensorin.Usecase
	audioThreshold float64
}

func NewSensorPresenceSource(sensors sensorin.Usecase, audioThreshold float64) screenout.PresenceSource {
	return &SensorPresenceSource{sensors: sensors, audioThreshold: audioThreshold}
}

func (s *SensorPresenceSource) Sample(ctx context.Context) (domain.PresenceSample, error) {
	reading, err := s.sensors.ReadPresence(ctx, s.audioThreshold)
	if err != nil {
		return domain.PresenceSample{}, err
	}
	return domain.PresenceSample{
		InputIdle:      reading.InputIdle,
		AudioRendering: reading.AudioRendering,
		FullscreenApp:  reading.FullscreenApp,
		Uptime:         reading.Uptime,
	}, nil
}
