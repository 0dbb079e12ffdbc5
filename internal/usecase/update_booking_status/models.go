package update_booking_status

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// Request модель запроса на смену статуса
type Request struct {
	BookingID uuid.UUID
	Status    domain.BookingStatus
	AdminID   string
}

// Response модель ответа после смены статуса
type Response struct {
	Booking             *domain.Booking
	PreviousStatus      domain.BookingStatus
	NotificationsQueued int
}
