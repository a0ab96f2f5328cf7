package in

import (
	"context"

	"dwell/internal/modules/report/dto"
)

type Usecase interface {
	Today(ctx context.Context) (dto.DayReport, error)
	// ForDate takes a day key in 2006-01-02 form.
	ForDate(ctx context.Context, dayKey string) (dto.DayReport, error)
	TopApps(ctx context.Context, dayKey string, limit int) ([]dto.AppEntry, error)
}
