package update_customer_notes

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/service/bookings/models"
)

type BookingsService interface {
	UpdateCustomerNotes(ctx context.Context, customerID uuid.UUID, req *models.UpdateNotesRequest) (*models.CustomerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
