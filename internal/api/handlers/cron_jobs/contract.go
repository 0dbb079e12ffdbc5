package cron_jobs

import (
	"context"

	drainOutbox "github.com/m04kA/SMC-GroomingService/internal/usecase/drain_outbox"
	scheduleReminders "github.com/m04kA/SMC-GroomingService/internal/usecase/schedule_reminders"
)

type DrainOutboxUseCase interface {
	Execute(ctx context.Context, req *drainOutbox.Request) (*drainOutbox.Response, error)
}

type ScheduleRemindersUseCase interface {
	Execute(ctx context.Context) (*scheduleReminders.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
