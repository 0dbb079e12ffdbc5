package cron_jobs

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	drainOutbox "github.com/m04kA/SMC-GroomingService/internal/usecase/drain_outbox"
)

const maxBatch = 200

type Handler struct {
	drain     DrainOutboxUseCase
	reminders ScheduleRemindersUseCase
	logger    Logger
}

func NewHandler(drain DrainOutboxUseCase, reminders ScheduleRemindersUseCase, logger Logger) *Handler {
	return &Handler{
		drain:     drain,
		reminders: reminders,
		logger:    logger,
	}
}

// HandleDrain POST /internal/outbox/drain?batch=
func (h *Handler) HandleDrain(w http.ResponseWriter, r *http.Request) {
	req := &drainOutbox.Request{}
	if raw := r.URL.Query().Get("batch"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxBatch {
			handlers.RespondBadRequest(w, handlers.MsgInvalidParams)
			return
		}
		req.BatchSize = n
	}

	result, err := h.drain.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("POST /internal/outbox/drain - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/outbox/drain - sent=%d, failed=%d, dead=%d", result.Sent, result.Failed, result.Dead)
	handlers.RespondJSON(w, http.StatusOK, FromDrainResponse(result))
}

// HandleReminders POST /internal/reminders
func (h *Handler) HandleReminders(w http.ResponseWriter, r *http.Request) {
	result, err := h.reminders.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/reminders - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/reminders - queued=%d, duplicates=%d", result.Queued, result.Duplicates)
	handlers.RespondJSON(w, http.StatusOK, FromRemindersResponse(result))
}
