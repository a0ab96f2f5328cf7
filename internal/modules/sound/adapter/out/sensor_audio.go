package out

import (
	"context"

	sensorin "dwell/internal/modules/sensor/port/in"
	"dwell/internal/modules/sound/domain"
	soundout "dwell/internal/modules/sound/port/out"
)

// SensorAudioSource samples the default audio endpoint through the sensor
// provider.
type SensorAudioSource struct {
	sensors sensorin.Usecase
}

func NewSensorAudioSource(sensors sensorin.Usecase) soundout.AudioSource {
	return &SensorAudioSource{sensors: sensors}
}

func (s *SensorAudioSource) Read(ctx context.Context) (domain.AudioReading, error) {
	reading, err := s.sensors.ReadAudio(ctx)
	if err != nil {
		return domain.AudioReading{}, err
	}
	return domain.AudioReading{
		Present:      reading.Present,
		DeviceID:     reading.DeviceID,
		FriendlyName: reading.FriendlyName,
		VolumeScalar: reading.VolumeScalar,
		PeakLevel:    reading.PeakLevel,
	}, nil
}
