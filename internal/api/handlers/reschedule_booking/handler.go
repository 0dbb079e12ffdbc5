package reschedule_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	reschedule "github.com/m04kA/SMC-GroomingService/internal/usecase/reschedule_booking"
)

const (
	msgBookingNotFound  = "Το ραντεβού δεν βρέθηκε."
	msgBookingNotActive = "Το ραντεβού δεν μπορεί να μετακινηθεί."
	msgSlotNotAvailable = "Η νέα ώρα δεν είναι διαθέσιμη."
)

type Handler struct {
	useCase  RescheduleBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase RescheduleBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle PATCH /api/v1/admin/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	var body RescheduleRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}

	req, err := body.ToUseCaseRequest(bookingID, adminID, h.location)
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Invalid params: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reschedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		case errors.Is(err, reschedule.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, reschedule.ErrBookingNotActive):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgBookingNotActive)
		case errors.Is(err, reschedule.ErrSlotNotAvailable):
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)
		default:
			h.logger.Error("PATCH /admin/bookings/{id}/reschedule - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Rejected: booking_id=%s: %v", bookingID, err)
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/reschedule - Rescheduled: booking_id=%s, new_start=%s",
		bookingID, result.Booking.StartAt.In(h.location).Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
