package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/domain"
	updateStatus "github.com/m04kA/SMC-GroomingService/internal/usecase/update_booking_status"
)

const (
	msgBookingNotFound   = "Το ραντεβού δεν βρέθηκε."
	msgInvalidTransition = "Η αλλαγή κατάστασης δεν επιτρέπεται."
	msgStatusChanged     = "Η κατάσταση του ραντεβού άλλαξε. Ανανεώστε τη σελίδα."
)

type Handler struct {
	useCase UpdateBookingStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateStatus.Request{
		BookingID: bookingID,
		Status:    domain.BookingStatus(req.Status),
		AdminID:   adminID,
	})
	if err != nil {
		switch {
		case errors.Is(err, updateStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid input: booking_id=%s: %v", bookingID, err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidParams)

		case errors.Is(err, updateStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid transition: booking_id=%s, to=%s", bookingID, req.Status)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidTransition)

		case errors.Is(err, updateStatus.ErrStatusChanged):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Concurrent change: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgStatusChanged)

		default:
			h.logger.Error("PATCH /admin/bookings/{id}/status - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/status - Status updated: booking_id=%s, %s -> %s by admin=%s",
		bookingID, result.PreviousStatus, result.Booking.Status, adminID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
