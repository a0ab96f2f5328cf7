package usecase

import (
	"context"

	"dwell/internal/modules/focus/domain"
	"dwell/internal/modules/focus/dto"
	"dwell/internal/modules/focus/service"
)

type Interactor struct {
	svc *service.FocusService
}

func NewInteractor(svc *service.FocusService) *Interactor {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context) error { return i.svc.Start(ctx) }
func (i *Interactor) Stop(ctx context.Context) error  { return i.svc.Stop(ctx) }

func (i *Interactor) OnSwitch(fn func(dto.Switch)) {
	i.svc.OnSwitch(func(target domain.FocusTarget) {
		fn(dto.Switch{
			AppName:        target.AppName,
			ExecutablePath: target.ExecutablePath,
			WindowTitle:    target.WindowTitle,
		})
	})
}

func (i *Interactor) Snapshot() dto.Snapshot {
	open, elapsed := i.svc.Snapshot()
	if open == nil {
		return dto.Snapshot{}
	}
	return dto.Snapshot{
		Active:         true,
		AppName:        open.AppName,
		ExecutablePath: open.ExecutablePath,
		WindowTitle:    open.WindowTitle,
		Start:          open.Start,
		Seconds:        int(elapsed.Seconds()),
	}
}
