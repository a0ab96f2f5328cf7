package service

import (
	"context"

	"github.com/coder/quartz"

	"dwell/internal/modules/report/domain"
	reportout "dwell/internal/modules/report/port/out"
	"dwell/internal/platform/timeutil"
)

// ReportService assembles read-only day reports from the persisted records.
// It never touches live tracker state; "today" reflects the last checkpoint.
type ReportService struct {
	clock quartz.Clock
	store reportout.HistoryStore
}

func NewReportService(clk quartz.Clock, store reportout.HistoryStore) *ReportService {
	return &ReportService{clock: clk, store: store}
}

func (s *ReportService) TodayKey() string {
	return timeutil.DayKey(s.clock.Now())
}

type DayReport struct {
	Date          string
	ScreenSeconds int
	FocusSeconds  int
	SoundSeconds  int
	TopApps       []domain.AppTotal
	Segments      []domain.Segment
	FocusSessions []domain.FocusRow
	SoundSessions []domain.SoundRow
}

func (s *ReportService) ForDate(ctx context.Context, dayKey string) (DayReport, error) {
	report := DayReport{Date: dayKey}
	var err error
	if report.ScreenSeconds, err = s.store.ActiveSecondsForDate(ctx, dayKey); err != nil {
		return DayReport{}, err
	}
	if report.FocusSeconds, err = s.store.FocusSecondsForDate(ctx, dayKey); err != nil {
		return DayReport{}, err
	}
	if report.SoundSeconds, err = s.store.ListeningSecondsForDate(ctx, dayKey); err != nil {
		return DayReport{}, err
	}
	if report.TopApps, err = s.store.TopAppsForDate(ctx, dayKey, 5); err != nil {
		return DayReport{}, err
	}
	if report.Segments, err = s.store.SegmentsForDate(ctx, dayKey); err != nil {
		return DayReport{}, err
	}
	if report.FocusSessions, err = s.store.FocusSessionsForDate(ctx, dayKey); err != nil {
		return DayReport{}, err
	}
	if report.SoundSessions, err = s.store.SoundSessionsForDate(ctx, dayKey); err != nil {
		return DayReport{}, err
	}
	return report, nil
}

func (s *ReportService) TopApps(ctx context.Context, dayKey string, limit int) ([]domain.AppTotal, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.store.TopAppsForDate(ctx, dayKey, limit)
}
