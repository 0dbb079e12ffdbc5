package update_customer_notes

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/service/bookings"
	"github.com/m04kA/SMC-GroomingService/internal/service/bookings/models"
)

const msgCustomerNotFound = "Ο πελάτης δεν βρέθηκε."

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

// Handle PATCH /api/v1/admin/customers/{customerId}/notes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	customerID, err := handlers.PathUUID(r, "customerId")
	if err != nil {
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	var req models.UpdateNotesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/customers/{id}/notes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}
	req.AdminID = adminID

	result, err := h.service.UpdateCustomerNotes(r.Context(), customerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		case errors.Is(err, bookings.ErrCustomerNotFound):
			handlers.RespondNotFound(w, msgCustomerNotFound)
		default:
			h.logger.Error("PATCH /admin/customers/{id}/notes - Failed: customer_id=%s, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
