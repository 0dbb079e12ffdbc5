package update_booking_status

import (
	"github.com/google/uuid"

	updateStatus "github.com/m04kA/SMC-GroomingService/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	BookingID           uuid.UUID `json:"bookingId"`
	Status              string    `json:"status"`
	PreviousStatus      string    `json:"previousStatus"`
	NotificationsQueued int       `json:"notificationsQueued"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		BookingID:           resp.Booking.ID,
		Status:              string(resp.Booking.Status),
		PreviousStatus:      string(resp.PreviousStatus),
		NotificationsQueued: resp.NotificationsQueued,
	}
}
