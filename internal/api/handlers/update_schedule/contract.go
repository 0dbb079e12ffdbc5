package update_schedule

import (
	"context"

	"github.com/m04kA/SMC-GroomingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertWeekly(ctx context.Context, req *models.UpsertWeeklyRequest) (*models.WeeklyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
