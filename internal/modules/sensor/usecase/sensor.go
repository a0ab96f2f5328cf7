package usecase

import (
	"context"

	"dwell/internal/modules/sensor/dto"
	sensorin "dwell/internal/modules/sensor/port/in"
	"dwell/internal/modules/sensor/service"
)

type Interactor struct {
	svc *service.SensorService
}

func NewInteractor(svc *service.SensorService) sensorin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context) error {
	return i.svc.Start(ctx)
}

func (i *Interactor) Stop() {
	i.svc.Stop()
}

func (i *Interactor) Check(ctx context.Context) (dto.ProviderInfo, error) {
	manifest, meta, err := i.svc.Check(ctx)
	if err != nil {
		return dto.ProviderInfo{}, err
	}
	return dto.ProviderInfo{
		Name:     meta.Name,
		Version:  meta.Version,
		Platform: meta.Platform,
		Binary:   manifest.Binary,
	}, nil
}

func (i *Interactor) ReadPresence(ctx context.Context, audioThreshold float64) (dto.PresenceOutput, error) {
	reading, err := i.svc.ReadPresence(ctx, audioThreshold)
	if err != nil {
		return dto.PresenceOutput{}, err
	}
	return dto.PresenceOutput{
		InputIdle:      reading.InputIdle,
		AudioRendering: reading.AudioRendering,
		FullscreenApp:  reading.FullscreenApp,
		Uptime:         reading.Uptime,
	}, nil
}

func (i *Interactor) ReadForeground(ctx context.Context) (dto.ForegroundOutput, error) {
	reading, err := i.svc.ReadForeground(ctx)
	if err != nil {
		return dto.ForegroundOutput{}, err
	}
	return dto.ForegroundOutput{
		Present:        reading.Present,
		ProcessID:      reading.ProcessID,
		AppName:        reading.AppName,
		ExecutablePath: reading.ExecutablePath,
		WindowTitle:    reading.WindowTitle,
	}, nil
}

func (i *Interactor) ReadAudio(ctx context.Context) (dto.AudioOutput, error) {
	reading, err := i.svc.ReadAudio(ctx)
	if err != nil {
		return dto.AudioOutput{}, err
	}
	return dto.AudioOutput{
		Present:      reading.Present,
		DeviceID:     reading.DeviceID,
		FriendlyName: reading.FriendlyName,
		VolumeScalar: reading.VolumeScalar,
		PeakLevel:    reading.PeakLevel,
	}, nil
}
