package list_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/service/bookings"
	"github.com/m04kA/SMC-GroomingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
)

type Handler struct {
	service  BookingsService
	location *time.Location
	logger   Logger
}

func NewHandler(service BookingsService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/bookings
// Query params: date (required, YYYY-MM-DD), status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := calendar.ParseDate(query.Get("date"), h.location)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	req := &models.ListBookingsRequest{Date: date}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
			return
		}
		h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
