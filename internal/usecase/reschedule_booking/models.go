package reschedule_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID uuid.UUID
	Date      time.Time        // Новая дата (полночь в часовом поясе бизнеса)
	StartTime types.TimeString // Новое время начала
	AdminID   string
}

// Response модель ответа после переноса
type Response struct {
	Booking    *domain.Booking
	Reschedule *domain.BookingReschedule
}
