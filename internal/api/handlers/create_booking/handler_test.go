package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/domain"
	createBooking "github.com/m04kA/SMC-GroomingService/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	err  error
	last *createBooking.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &createBooking.Response{
		Booking: &domain.Booking{ID: bookingID, Status: domain.StatusPending},
	}, nil
}

var (
	athens, _ = time.LoadLocation("Europe/Athens")
	bookingID = uuid.MustParse("7d7c7a8e-5f1b-4f0e-9c34-1e2a3b4c5d6e")
)

const validBody = `{
	"serviceId": "b6a7c1d2-3e4f-4a5b-8c9d-0e1f2a3b4c5d",
	"date": "2025-10-13",
	"time": "10:00",
	"ownerName": "Μαρία",
	"phone": "6948965371",
	"petType": "dog"
}`

func post(ctx context.Context, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)).WithContext(ctx)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) BookingResponse {
	t.Helper()
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, athens, nopLogger{})

	rec := post(context.Background(), h.Handle, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.BookingID)
	assert.Equal(t, bookingID, *resp.BookingID)
	assert.Equal(t, "pending", resp.Status)

	require.NotNil(t, uc.last)
	assert.Nil(t, uc.last.Manual)
	assert.Equal(t, "10:00", uc.last.StartTime.String())
	assert.Equal(t, time.Date(2025, time.October, 13, 0, 0, 0, 0, athens), uc.last.Date)
}

func TestHandle_SingleDigitHourIsCanonicalized(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, athens, nopLogger{})

	rec := post(context.Background(), h.Handle, strings.Replace(validBody, `"10:00"`, `"9:00"`, 1))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.last)
	assert.Equal(t, "09:00", uc.last.StartTime.String())
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"slot taken", fmt.Errorf("%w: overlap", createBooking.ErrSlotNotAvailable), http.StatusConflict, msgSlotNotAvailable},
		{"invalid input", createBooking.ErrInvalidInput, http.StatusBadRequest, msgValidation},
		{"invalid date", createBooking.ErrInvalidDate, http.StatusBadRequest, msgValidation},
		{"unknown service", createBooking.ErrServiceNotFound, http.StatusNotFound, msgServiceNotFound},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError, msgBookingFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, athens, nopLogger{})

			rec := post(context.Background(), h.Handle, validBody)

			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.msg, resp.Error)
			assert.Nil(t, resp.BookingID)
		})
	}
}

func TestHandle_MalformedRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"serviceId":`},
		{"bad service id", strings.Replace(validBody, "b6a7c1d2-3e4f-4a5b-8c9d-0e1f2a3b4c5d", "nope", 1)},
		{"bad date", strings.Replace(validBody, "2025-10-13", "13/10/2025", 1)},
		{"bad time", strings.Replace(validBody, `"10:00"`, `"25:00"`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			h := NewHandler(uc, athens, nopLogger{})

			rec := post(context.Background(), h.Handle, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, msgValidation, decode(t, rec).Error)
			assert.Nil(t, uc.last)
		})
	}
}

func TestHandleManual_RequiresAdmin(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, athens, nopLogger{})

	rec := post(context.Background(), h.HandleManual, validBody)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.last)
}

func TestHandleManual_PassesOptions(t *testing.T) {
	ctx := middleware.WithAdminID(context.Background(), "admin-1")

	t.Run("defaults", func(t *testing.T) {
		uc := &stubUseCase{}
		h := NewHandler(uc, athens, nopLogger{})

		rec := post(ctx, h.HandleManual, validBody)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, uc.last.Manual)
		assert.Equal(t, "admin-1", uc.last.Manual.AdminID)
		assert.True(t, uc.last.Manual.SendNotification)
		assert.False(t, uc.last.Manual.ForceBooking)
	})

	t.Run("silent forced", func(t *testing.T) {
		uc := &stubUseCase{}
		h := NewHandler(uc, athens, nopLogger{})
		body := strings.Replace(validBody, `"petType": "dog"`, `"petType": "dog", "sendNotification": false, "forceBooking": true`, 1)

		rec := post(ctx, h.HandleManual, body)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.False(t, uc.last.Manual.SendNotification)
		assert.True(t, uc.last.Manual.ForceBooking)
	})
}
