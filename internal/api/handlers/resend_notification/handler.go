package resend_notification

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/service/bookings"
	"github.com/m04kA/SMC-GroomingService/internal/service/bookings/models"
)

const (
	msgBookingNotFound = "Το ραντεβού δεν βρέθηκε."
	msgNoRecipient     = "Δεν υπάρχουν στοιχεία επικοινωνίας για το κανάλι."
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/{bookingId}/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	var req models.ResendNotificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/notifications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}
	req.AdminID = adminID

	result, err := h.service.ResendNotification(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /admin/bookings/{id}/notifications - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookings.ErrNoRecipient):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNoRecipient)
		default:
			h.logger.Error("POST /admin/bookings/{id}/notifications - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/notifications - Queued: booking_id=%s, template=%s, channel=%s",
		bookingID, req.Template, req.Channel)
	handlers.RespondJSON(w, http.StatusAccepted, result)
}
