package update_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/service/schedule"
	"github.com/m04kA/SMC-GroomingService/internal/service/schedule/models"
)

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

// Handle PUT /api/v1/admin/schedule/{dayOfWeek}
// dayOfWeek: 0 (Κυριακή) - 6 (Σάββατο)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	day, err := strconv.Atoi(handlers.PathVar(r, "dayOfWeek"))
	if err != nil || day < 0 || day > 6 {
		h.logger.Warn("PUT /admin/schedule/{day} - Invalid day of week: %q", handlers.PathVar(r, "dayOfWeek"))
		handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
		return
	}

	var req models.UpsertWeeklyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}
	req.AdminID = adminID
	req.DayOfWeek = time.Weekday(day)

	result, err := h.service.UpsertWeekly(r.Context(), &req)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/schedule/{day} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
			return
		}
		h.logger.Error("PUT /admin/schedule/{day} - Failed: day=%d, error=%v", day, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/schedule/{day} - Updated: day=%d by admin=%s", day, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
