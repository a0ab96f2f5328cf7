package in

import (
	"dwell/internal/modules/sound/dto"
	soundin "dwell/internal/modules/sound/port/in"
)

type CLIHandler struct {
	usecase soundin.Usecase
}

func NewCLIHandler(usecase soundin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Snapshot() dto.Snapshot {
	return h.usecase.Snapshot()
}
