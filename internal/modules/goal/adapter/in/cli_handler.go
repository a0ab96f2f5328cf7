package in

import (
	"context"
	"time"

	"dwell/internal/modules/goal/dto"
	goalin "dwell/internal/modules/goal/port/in"
)

type CLIHandler struct {
	usecase goalin.Usecase
}

func NewCLIHandler(usecase goalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SetGoal(ctx context.Context, minutes int) error {
	return h.usecase.SetScreenTimeGoal(ctx, minutes)
}

func (h CLIHandler) Status(ctx context.Context, current time.Duration) (dto.Status, error) {
	return h.usecase.Status(ctx, current)
}

func (h CLIHandler) Notifications(ctx context.Context) (bool, error) {
	return h.usecase.NotificationsEnabled(ctx)
}

func (h CLIHandler) SetNotifications(ctx context.Context, enabled bool) error {
	return h.usecase.SetNotificationsEnabled(ctx, enabled)
}
