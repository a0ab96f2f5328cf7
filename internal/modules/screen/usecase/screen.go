package usecase

import (
	"context"

	"dwell/internal/modules/screen/domain"
	"dwell/internal/modules/screen/dto"
	"dwell/internal/modules/screen/service"
)

// Interactor adapts the tracking service for inbound adapters, mapping domain
// state to transport-friendly DTOs.
type Interactor struct {
	svc *service.ScreenService
}

func NewInteractor(svc *service.ScreenService) *Interactor {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context) error  { return i.svc.Start(ctx) }
func (i *Interactor) Stop(ctx context.Context) error   { return i.svc.Stop(ctx) }
func (i *Interactor) Pause(ctx context.Context) error  { return i.svc.Pause(ctx) }
func (i *Interactor) Resume(ctx context.Context) error { return i.svc.Resume(ctx) }

func (i *Interactor) Snapshot() dto.Snapshot {
	state, day, counters := i.svc.Snapshot()
	return dto.Snapshot{
		State:             state.String(),
		SessionDate:       day.SessionDate,
		DayAnchor:         day.DayAnchor,
		ActiveSeconds:     day.ActiveSeconds,
		SegmentStart:      counters.SegmentStart,
		SegmentSeconds:    counters.SegmentSeconds,
		ContinuousStart:   counters.ContinuousStart,
		ContinuousSeconds: counters.ContinuousSeconds,
		SessionCount:      counters.SessionCount,
	}
}

func (i *Interactor) OnStateChange(fn func(state string)) {
	i.svc.OnStateChange(func(s domain.TrackingState) {
		fn(s.String())
	})
}
