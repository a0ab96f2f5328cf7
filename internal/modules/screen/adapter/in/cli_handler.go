package in

import (
	"dwell/internal/modules/screen/dto"
	screenin "dwell/internal/modules/screen/port/in"
)

type CLIHandler struct {
	usecase screenin.Usecase
}

func NewCLIHandler(usecase screenin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Snapshot() dto.Snapshot {
	return h.usecase.Snapshot()
}
