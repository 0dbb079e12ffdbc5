package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-GroomingService/internal/usecase/create_booking"
)

const (
	msgValidation       = "Παρακαλώ συμπληρώστε σωστά όλα τα πεδία."
	msgSlotNotAvailable = "Το επιλεγμένο ραντεβού δεν είναι πλέον διαθέσιμο. Παρακαλώ επιλέξτε άλλη ώρα."
	msgServiceNotFound  = "Η υπηρεσία δεν βρέθηκε."
	msgBookingFailed    = "Σφάλμα κατά την καταχώρηση του ραντεβού."
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		respondFailure(w, http.StatusBadRequest, msgValidation)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: service=%q, date=%q, time=%q: %v",
			req.ServiceID, req.Date, req.Time, err)
		respondFailure(w, http.StatusBadRequest, msgValidation)
		return
	}

	h.execute(w, r, useCaseReq, "POST /bookings")
}

// HandleManual POST /api/v1/admin/bookings
func (h *Handler) HandleManual(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req ManualBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings - Invalid request body: %v", err)
		respondFailure(w, http.StatusBadRequest, msgValidation)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location, adminID)
	if err != nil {
		h.logger.Warn("POST /admin/bookings - Failed to parse request: admin=%s: %v", adminID, err)
		respondFailure(w, http.StatusBadRequest, msgValidation)
		return
	}

	h.execute(w, r, useCaseReq, "POST /admin/bookings")
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, req *createBooking.Request, route string) {
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("%s - Slot not available: date=%s, time=%s", route, req.Date.Format("2006-01-02"), req.StartTime)
			respondFailure(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidInput), errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("%s - Validation failed: %v", route, err)
			respondFailure(w, http.StatusBadRequest, msgValidation)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("%s - Service not found: service_id=%s", route, req.ServiceID)
			respondFailure(w, http.StatusNotFound, msgServiceNotFound)

		default:
			h.logger.Error("%s - Failed to create booking: service_id=%s, error=%v", route, req.ServiceID, err)
			respondFailure(w, http.StatusInternalServerError, msgBookingFailed)
		}
		return
	}

	h.logger.Info("%s - Booking created successfully: booking_id=%s, status=%s, notifications=%d",
		route, result.Booking.ID, result.Booking.Status, result.NotificationsQueued)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func respondFailure(w http.ResponseWriter, status int, message string) {
	handlers.RespondJSON(w, status, &BookingResponse{Success: false, Error: message})
}
