package usecase

import (
	"context"
	"time"

	"dwell/internal/modules/report/dto"
	"dwell/internal/modules/report/service"
	"dwell/internal/platform/timeutil"
)

type Interactor struct {
	svc *service.ReportService
}

func NewInteractor(svc *service.ReportService) *Interactor {
	return &Interactor{svc: svc}
}

func (i *Interactor) Today(ctx context.Context) (dto.DayReport, error) {
	return i.ForDate(ctx, i.svc.TodayKey())
}

func (i *Interactor) ForDate(ctx context.Context, dayKey string) (dto.DayReport, error) {
	report, err := i.svc.ForDate(ctx, dayKey)
	if err != nil {
		return dto.DayReport{}, err
	}
	out := dto.DayReport{
		Date:          report.Date,
		ScreenSeconds: report.ScreenSeconds,
		ScreenText:    timeutil.FormatHoursMinutes(secs(report.ScreenSeconds)),
		FocusSeconds:  report.FocusSeconds,
		FocusText:     timeutil.FormatHoursMinutes(secs(report.FocusSeconds)),
		SoundSeconds:  report.SoundSeconds,
		SoundText:     timeutil.FormatHoursMinutes(secs(report.SoundSeconds)),
	}
	for _, app := range report.TopApps {
		out.TopApps = append(out.TopApps, dto.AppEntry{
			AppName: app.AppName,
			Seconds: app.TotalSeconds,
			Text:    timeutil.FormatCompact(secs(app.TotalSeconds)),
		})
	}
	for _, seg := range report.Segments {
		out.Segments = append(out.Segments, dto.SegmentEntry{Start: seg.Start, Seconds: seg.DurationSeconds})
	}
	for _, row := range report.FocusSessions {
		out.FocusSessions = append(out.FocusSessions, dto.FocusEntry{
			AppName: row.AppName,
			Start:   row.Start,
			End:     row.End,
			Seconds: row.DurationSeconds,
		})
	}
	for _, row := range report.SoundSessions {
		out.SoundSessions = append(out.SoundSessions, dto.SoundEntry{
			DeviceName:     row.DeviceName,
			DeviceType:     row.DeviceType,
			Start:          row.Start,
			End:            row.End,
			Seconds:        row.ListeningSeconds,
			EstimatedMaxDB: row.EstimatedMaxDB,
			WasHarmful:     row.WasHarmful,
		})
	}
	return out, nil
}

func (i *Interactor) TopApps(ctx context.Context, dayKey string, limit int) ([]dto.AppEntry, error) {
	apps, err := i.svc.TopApps(ctx, dayKey, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AppEntry, 0, len(apps))
	for _, app := range apps {
		out = append(out, dto.AppEntry{
			AppName: app.AppName,
			Seconds: app.TotalSeconds,
			Text:    timeutil.FormatCompact(secs(app.TotalSeconds)),
		})
	}
	return out, nil
}

func secs(n int) time.Duration {
	return time.Duration(n) * time.Second
}
