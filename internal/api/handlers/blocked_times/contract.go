package blocked_times

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateBlocked(ctx context.Context, req *models.CreateBlockedRequest) (*models.BlockedResponse, error)
	DeleteBlocked(ctx context.Context, adminID string, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
