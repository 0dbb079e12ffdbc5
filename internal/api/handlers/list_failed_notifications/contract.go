package list_failed_notifications

import (
	"context"

	"github.com/m04kA/SMC-GroomingService/internal/service/bookings/models"
)

type BookingsService interface {
	ListFailedNotifications(ctx context.Context, limit int) ([]models.OutboxEntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
