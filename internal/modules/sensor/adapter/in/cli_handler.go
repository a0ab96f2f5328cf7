package in

import (
	"context"

	"dwell/internal/modules/sensor/dto"
	sensorin "dwell/internal/modules/sensor/port/in"
)

type CLIHandler struct {
	usecase sensorin.Usecase
}

func NewCLIHandler(usecase sensorin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Check(ctx context.Context) (dto.ProviderInfo, error) {
	return h.usecase.Check(ctx)
}
