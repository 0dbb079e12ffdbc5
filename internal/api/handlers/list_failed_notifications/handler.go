package list_failed_notifications

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/service/bookings/models"
)

const maxLimit = 500

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

// Handle GET /api/v1/admin/outbox/failed?limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit := models.DefaultFailedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxLimit {
			h.logger.Warn("GET /admin/outbox/failed - Invalid limit: %q", raw)
			handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
			return
		}
		limit = n
	}

	entries, err := h.service.ListFailedNotifications(r.Context(), limit)
	if err != nil {
		h.logger.Error("GET /admin/outbox/failed - Failed to list entries: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entries)
}
