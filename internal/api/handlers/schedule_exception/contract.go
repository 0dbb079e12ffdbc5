package schedule_exception

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertException(ctx context.Context, req *models.UpsertExceptionRequest) (*models.ExceptionResponse, error)
	DeleteException(ctx context.Context, adminID string, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
