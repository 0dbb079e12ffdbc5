package resend_notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/service/bookings/models"
)

type BookingsService interface {
	ResendNotification(ctx context.Context, bookingID uuid.UUID, req *models.ResendNotificationRequest) (*models.ResendNotificationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
