package in

import (
	"dwell/internal/modules/focus/dto"
	focusin "dwell/internal/modules/focus/port/in"
)

type CLIHandler struct {
	usecase focusin.Usecase
}

func NewCLIHandler(usecase focusin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Snapshot() dto.Snapshot {
	return h.usecase.Snapshot()
}
