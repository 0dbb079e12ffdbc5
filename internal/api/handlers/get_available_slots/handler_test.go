package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-GroomingService/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	slots []domain.AvailableSlot
	err   error
	last  *getAvailableSlots.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &getAvailableSlots.Response{Date: req.Date, ServiceID: req.ServiceID, Slots: s.slots}, nil
}

var athens, _ = time.LoadLocation("Europe/Athens")

const serviceID = "b6a7c1d2-3e4f-4a5b-8c9d-0e1f2a3b4c5d"

func get(h *Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots?"+query, nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_ReturnsSlots(t *testing.T) {
	uc := &stubUseCase{slots: []domain.AvailableSlot{
		{Time: "09:00", Available: true},
		{Time: "09:30", Available: true},
	}}
	h := NewHandler(uc, athens, nopLogger{})

	rec := get(h, "date=2025-10-13&service="+serviceID)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var resp SlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []SlotResponse{{Time: "09:00", Available: true}, {Time: "09:30", Available: true}}, resp.Slots)
	assert.Equal(t, time.Date(2025, time.October, 13, 0, 0, 0, 0, athens), uc.last.Date)
}

func TestHandle_EmptyDayIsEmptyArray(t *testing.T) {
	h := NewHandler(&stubUseCase{}, athens, nopLogger{})

	rec := get(h, "date=2025-10-12&service="+serviceID)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"slots":[]}`, rec.Body.String())
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		err   error
	}{
		{"missing date", "service=" + serviceID, nil},
		{"bad date", "date=2025-13-01&service=" + serviceID, nil},
		{"missing service", "date=2025-10-13", nil},
		{"unknown service", "date=2025-10-13&service=" + serviceID, getAvailableSlots.ErrServiceNotFound},
		{"rejected by usecase", "date=2025-10-13&service=" + serviceID, getAvailableSlots.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, athens, nopLogger{})

			rec := get(h, tt.query)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"`+handlers.MsgInvalidParams+`"}`, rec.Body.String())
		})
	}
}

func TestHandle_InternalError(t *testing.T) {
	h := NewHandler(&stubUseCase{err: getAvailableSlots.ErrInternal}, athens, nopLogger{})

	rec := get(h, "date=2025-10-13&service="+serviceID)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), msgSlotsFailed)
}
