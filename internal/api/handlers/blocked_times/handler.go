package blocked_times

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/service/schedule"
	"github.com/m04kA/SMC-GroomingService/internal/service/schedule/models"
)

const msgBlockedNotFound = "Η δέσμευση χρόνου δεν βρέθηκε."

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/admin/blocked-times
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req models.CreateBlockedRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-times - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}
	req.AdminID = adminID

	result, err := h.service.CreateBlocked(r.Context(), &req)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("POST /admin/blocked-times - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
			return
		}
		h.logger.Error("POST /admin/blocked-times - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/blocked-times - Created: id=%s by admin=%s", result.ID, adminID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleDelete DELETE /api/v1/admin/blocked-times/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	if err := h.service.DeleteBlocked(r.Context(), adminID, id); err != nil {
		if errors.Is(err, schedule.ErrBlockedTimeNotFound) {
			handlers.RespondNotFound(w, msgBlockedNotFound)
			return
		}
		h.logger.Error("DELETE /admin/blocked-times/{id} - Failed: id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
