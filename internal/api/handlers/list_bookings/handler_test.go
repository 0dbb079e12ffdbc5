package list_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/service/bookings"
	"github.com/m04kA/SMC-GroomingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	err  error
	last *models.ListBookingsRequest
}

func (s *stubService) List(_ context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{}, Total: 0}, nil
}

var athens, _ = time.LoadLocation("Europe/Athens")

func get(svc *stubService, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, athens, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/admin/bookings?"+query, nil))
	return rec
}

func TestHandle_PassesFilter(t *testing.T) {
	svc := &stubService{}

	rec := get(svc, "date=2025-10-13&status=pending")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, time.October, 13, 0, 0, 0, 0, athens), svc.last.Date)
	require.NotNil(t, svc.last.Status)
	assert.Equal(t, "pending", *svc.last.Status)
}

func TestHandle_StatusOptional(t *testing.T) {
	svc := &stubService{}

	rec := get(svc, "date=2025-10-13")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.last.Status)
}

func TestHandle_BadRequest(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(&stubService{}, "").Code)
	assert.Equal(t, http.StatusBadRequest, get(&stubService{err: bookings.ErrInvalidInput}, "date=2025-10-13&status=done").Code)
}

func TestHandle_InternalError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, get(&stubService{err: bookings.ErrInternal}, "date=2025-10-13").Code)
}
