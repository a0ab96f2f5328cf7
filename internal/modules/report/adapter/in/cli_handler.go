package in

import (
	"context"

	"dwell/internal/modules/report/dto"
	reportin "dwell/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Today(ctx context.Context) (dto.DayReport, error) {
	return h.usecase.Today(ctx)
}

func (h CLIHandler) ForDate(ctx context.Context, dayKey string) (dto.DayReport, error) {
	return h.usecase.ForDate(ctx, dayKey)
}

func (h CLIHandler) TopApps(ctx context.Context, dayKey string, limit int) ([]dto.AppEntry, error) {
	return h.usecase.TopApps(ctx, dayKey, limit)
}
