package blocked_times

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
	"github.com/m04kA/SMC-GroomingService/internal/service/schedule"
	"github.com/m04kA/SMC-GroomingService/internal/service/schedule/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	createErr error
	deleteErr error
	created   *models.CreateBlockedRequest
	deleted   uuid.UUID
}

func (s *stubService) CreateBlocked(_ context.Context, req *models.CreateBlockedRequest) (*models.BlockedResponse, error) {
	s.created = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.BlockedResponse{ID: uuid.New(), StartAt: req.StartAt, EndAt: req.EndAt, Reason: req.Reason}, nil
}

func (s *stubService) DeleteBlocked(_ context.Context, _ string, id uuid.UUID) error {
	s.deleted = id
	return s.deleteErr
}

func router(svc *stubService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/admin/blocked-times", h.HandleCreate).Methods(http.MethodPost)
	r.HandleFunc("/admin/blocked-times/{id}", h.HandleDelete).Methods(http.MethodDelete)
	return r
}

func do(r *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithAdminID(req.Context(), "admin-1"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreate(t *testing.T) {
	svc := &stubService{}

	rec := do(router(svc), http.MethodPost, "/admin/blocked-times",
		`{"startAt":"2025-10-14T10:00:00+03:00","endAt":"2025-10-14T12:00:00+03:00","reason":"κτηνίατρος"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "admin-1", svc.created.AdminID)
	assert.Equal(t, "κτηνίατρος", svc.created.Reason)
}

func TestHandleCreate_InvalidRange(t *testing.T) {
	svc := &stubService{createErr: schedule.ErrInvalidInput}

	rec := do(router(svc), http.MethodPost, "/admin/blocked-times",
		`{"startAt":"2025-10-14T12:00:00+03:00","endAt":"2025-10-14T10:00:00+03:00"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDelete(t *testing.T) {
	id := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		svc := &stubService{}
		rec := do(router(svc), http.MethodDelete, "/admin/blocked-times/"+id.String(), "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, id, svc.deleted)
	})

	t.Run("missing", func(t *testing.T) {
		svc := &stubService{deleteErr: schedule.ErrBlockedTimeNotFound}
		rec := do(router(svc), http.MethodDelete, "/admin/blocked-times/"+id.String(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := do(router(&stubService{}), http.MethodDelete, "/admin/blocked-times/42", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
