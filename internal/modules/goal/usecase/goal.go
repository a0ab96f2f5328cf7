package usecase

import (
	"context"
	"time"

	"dwell/internal/modules/goal/domain"
	"dwell/internal/modules/goal/dto"
	"dwell/internal/modules/goal/service"
)

type Interactor struct {
	svc *service.GoalService
}

func NewInteractor(svc *service.GoalService) *Interactor {
	return &Interactor{svc: svc}
}

func (i *Interactor) ScreenTimeGoal(ctx context.Context) (int, bool, error) {
	return i.svc.ScreenTimeGoal(ctx)
}

func (i *Interactor) SetScreenTimeGoal(ctx context.Context, minutes int) error {
	return i.svc.SetScreenTimeGoal(ctx, minutes)
}

func (i *Interactor) Status(ctx context.Context, current time.Duration) (dto.Status, error) {
	minutes, ok, err := i.svc.ScreenTimeGoal(ctx)
	if err != nil {
		return dto.Status{}, err
	}
	if !ok {
		return dto.Status{}, nil
	}
	return dto.Status{
		HasGoal:     true,
		GoalMinutes: minutes,
		Progress:    domain.Progress(current, minutes),
		Remaining:   domain.Remaining(current, minutes),
		OverGoal:    domain.IsOver(current, minutes),
		Text:        domain.FormatProgressText(current, minutes),
	}, nil
}

func (i *Interactor) NotificationsEnabled(ctx context.Context) (bool, error) {
	return i.svc.NotificationsEnabled(ctx)
}

func (i *Interactor) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	return i.svc.SetNotificationsEnabled(ctx, enabled)
}

func (i *Interactor) SoundThresholdDB(ctx context.Context) (float64, error) {
	return i.svc.SoundThresholdDB(ctx)
}

func (i *Interactor) SoundThresholdDuration(ctx context.Context) (time.Duration, error) {
	return i.svc.SoundThresholdDuration(ctx)
}

func (i *Interactor) Invalidate() { i.svc.Invalidate() }

func (i *Interactor) OnGoalChanged(fn func()) { i.svc.OnGoalChanged(fn) }
