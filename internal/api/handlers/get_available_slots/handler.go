package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-GroomingService/internal/usecase/get_available_slots"
)

const msgSlotsFailed = "Σφάλμα κατά τον υπολογισμό διαθεσιμότητας."

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/slots
// Query params: date (required, YYYY-MM-DD), service (required, uuid)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	date, service := query.Get("date"), query.Get("service")

	useCaseReq, err := ToUseCaseRequest(date, service, h.location)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid params: date=%q, service=%q: %v", date, service, err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput), errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /slots - Rejected: date=%s, service=%s: %v", date, service, err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidParams)

		default:
			h.logger.Error("GET /slots - Failed to get slots: date=%s, service=%s, error=%v", date, service, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgSlotsFailed)
		}
		return
	}

	h.logger.Info("GET /slots - Slots retrieved successfully: date=%s, service=%s, slots_count=%d",
		date, service, len(result.Slots))

	// доступность всегда считается заново
	w.Header().Set("Cache-Control", "no-store")
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
