package update_schedule

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/service/schedule"
	"github.com/m04kA/SMC-GroomingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	err  error
	last *models.UpsertWeeklyRequest
}

func (s *stubService) UpsertWeekly(_ context.Context, req *models.UpsertWeeklyRequest) (*models.WeeklyResponse, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.WeeklyResponse{
		ID:        uuid.New(),
		DayOfWeek: int(req.DayOfWeek),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Breaks:    req.Breaks,
	}, nil
}

// serve без ограничения маршрута, чтобы проверить разбор дня в обработчике
func serve(svc *stubService, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/admin/schedule/{dayOfWeek}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithAdminID(req.Context(), "admin-1"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Saved(t *testing.T) {
	svc := &stubService{}

	rec := serve(svc, "/admin/schedule/2",
		`{"startTime":"09:00","endTime":"18:00","breaks":[{"start":"13:00","end":"14:00"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Tuesday, svc.last.DayOfWeek)
	assert.Equal(t, "admin-1", svc.last.AdminID)
	assert.Equal(t, types.TimeString("09:00"), svc.last.StartTime)
	require.Len(t, svc.last.Breaks, 1)
	assert.Equal(t, types.TimeString("13:00"), svc.last.Breaks[0].Start)
	assert.Contains(t, rec.Body.String(), `"dayOfWeek":2`)
}

func TestHandle_Rejected(t *testing.T) {
	body := `{"startTime":"09:00","endTime":"18:00"}`

	tests := []struct {
		name string
		path string
		body string
		err  error
		want int
	}{
		{"day out of range", "/admin/schedule/7", body, nil, http.StatusBadRequest},
		{"negative day", "/admin/schedule/-1", body, nil, http.StatusBadRequest},
		{"day not a number", "/admin/schedule/monday", body, nil, http.StatusBadRequest},
		{"bad body", "/admin/schedule/1", `[]`, nil, http.StatusBadRequest},
		{"break outside hours", "/admin/schedule/1", body, schedule.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "/admin/schedule/1", body, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.err}, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandle_Unauthorized(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/schedule/1", strings.NewReader(`{}`))

	NewHandler(&stubService{}, nopLogger{}).Handle(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
