package schedule_exception

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/service/schedule"
	"github.com/m04kA/SMC-GroomingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
)

const msgExceptionNotFound = "Δεν υπάρχει εξαίρεση για την ημερομηνία."

type Handler struct {
	service  ScheduleService
	location *time.Location
	logger   Logger
}

func NewHandler(service ScheduleService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// HandleUpsert PUT /api/v1/admin/schedule/exceptions/{date}
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	date, err := calendar.ParseDate(handlers.PathVar(r, "date"), h.location)
	if err != nil {
		h.logger.Warn("PUT /admin/schedule/exceptions/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	var req models.UpsertExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule/exceptions/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}
	req.AdminID = adminID
	req.Date = date

	result, err := h.service.UpsertException(r.Context(), &req)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/schedule/exceptions/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
			return
		}
		h.logger.Error("PUT /admin/schedule/exceptions/{date} - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/schedule/exceptions/{date} - Saved: date=%s, closed=%t", result.Date, result.IsClosed)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/admin/schedule/exceptions/{date}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	date, err := calendar.ParseDate(handlers.PathVar(r, "date"), h.location)
	if err != nil {
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	if err := h.service.DeleteException(r.Context(), adminID, date); err != nil {
		if errors.Is(err, schedule.ErrExceptionNotFound) {
			handlers.RespondNotFound(w, msgExceptionNotFound)
			return
		}
		h.logger.Error("DELETE /admin/schedule/exceptions/{date} - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
