package usecase

import (
	"context"

	"dwell/internal/modules/sound/domain"
	"dwell/internal/modules/sound/dto"
	"dwell/internal/modules/sound/service"
)

type Interactor struct {
	svc *service.SoundService
}

func NewInteractor(svc *service.SoundService) *Interactor {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context) error { return i.svc.Start(ctx) }
func (i *Interactor) Stop(ctx context.Context) error  { return i.svc.Stop(ctx) }

func (i *Interactor) Snapshot() dto.Snapshot {
	open := i.svc.Snapshot()
	if open == nil {
		return dto.Snapshot{}
	}
	return dto.Snapshot{
		Active:           true,
		DeviceName:       open.DeviceName,
		DeviceType:       open.DeviceType.String(),
		Start:            open.Start,
		ListeningSeconds: open.ListeningSeconds,
		AvgVolume:        open.AvgVolume,
		EstimatedMaxDB:   open.EstimatedMaxDB,
		WasHarmful:       open.WasHarmful,
		HarmfulSeconds:   open.HarmfulSeconds,
		AlertFired:       open.Alert == domain.AlertFired,
	}
}

func (i *Interactor) OnAlert(fn func(dto.Alert)) {
	i.svc.OnAlert(func(session domain.Session) {
		fn(dto.Alert{
			DeviceName:     session.DeviceName,
			EstimatedMaxDB: session.EstimatedMaxDB,
			HarmfulSeconds: session.HarmfulSeconds,
		})
	})
}
