package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/domain"
	updateStatus "github.com/m04kA/SMC-GroomingService/internal/usecase/update_booking_status"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	err  error
	last *updateStatus.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *updateStatus.Request) (*updateStatus.Response, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &updateStatus.Response{
		Booking:             &domain.Booking{ID: req.BookingID, Status: req.Status},
		PreviousStatus:      domain.StatusPending,
		NotificationsQueued: 1,
	}, nil
}

var bookingID = uuid.MustParse("7d7c7a8e-5f1b-4f0e-9c34-1e2a3b4c5d6e")

func serve(t *testing.T, uc *stubUseCase, adminID string, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := mux.NewRouter()
	router.HandleFunc("/admin/bookings/{bookingId}/status", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	if adminID != "" {
		req = req.WithContext(middleware.WithAdminID(req.Context(), adminID))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Confirms(t *testing.T) {
	uc := &stubUseCase{}

	rec := serve(t, uc, "admin-1", "/admin/bookings/"+bookingID.String()+"/status", `{"status":"confirmed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"bookingId": "`+bookingID.String()+`",
		"status": "confirmed",
		"previousStatus": "pending",
		"notificationsQueued": 1
	}`, rec.Body.String())
	assert.Equal(t, "admin-1", uc.last.AdminID)
	assert.Equal(t, domain.StatusConfirmed, uc.last.Status)
}

func TestHandle_Errors(t *testing.T) {
	path := "/admin/bookings/" + bookingID.String() + "/status"

	tests := []struct {
		name    string
		adminID string
		path    string
		body    string
		err     error
		status  int
	}{
		{"no admin", "", path, `{"status":"confirmed"}`, nil, http.StatusUnauthorized},
		{"bad id", "admin-1", "/admin/bookings/xyz/status", `{"status":"confirmed"}`, nil, http.StatusBadRequest},
		{"bad body", "admin-1", path, `{"status":`, nil, http.StatusBadRequest},
		{"invalid status", "admin-1", path, `{"status":"done"}`, updateStatus.ErrInvalidInput, http.StatusBadRequest},
		{"not found", "admin-1", path, `{"status":"confirmed"}`, updateStatus.ErrBookingNotFound, http.StatusNotFound},
		{"forbidden transition", "admin-1", path, `{"status":"pending"}`, updateStatus.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"concurrent change", "admin-1", path, `{"status":"confirmed"}`, updateStatus.ErrStatusChanged, http.StatusConflict},
		{"internal", "admin-1", path, `{"status":"confirmed"}`, updateStatus.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubUseCase{err: tt.err}, tt.adminID, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
