package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-GroomingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-GroomingService/pkg/logger"
	"github.com/m04kA/SMC-GroomingService/pkg/ptr"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

var (
	athens, _  = time.LoadLocation("Europe/Athens")
	resourceID = uuid.MustParse("3f1c2a9e-8a4b-4d7e-9a51-0c2f6b1d7e11")
	friday     = time.Date(2025, time.October, 17, 0, 0, 0, 0, athens)
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	settings := domain.BusinessSettings{Location: athens, ResourceID: resourceID}
	return NewService(store.Schedule(), store.Audit(), store, settings, logger.NewNop()), store
}

func TestService_UpsertWeekly(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	req := &models.UpsertWeeklyRequest{
		AdminID:   "admin-1",
		DayOfWeek: time.Monday,
		StartTime: "09:00",
		EndTime:   "17:30",
		Breaks:    []domain.Break{{Start: "13:00", End: "14:00"}},
	}
	first, err := svc.UpsertWeekly(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, first.DayOfWeek)

	req.EndTime = "18:00"
	req.Breaks = nil
	second, err := svc.UpsertWeekly(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Empty(t, second.Breaks)

	stored, err := store.Schedule().GetWeekly(ctx, resourceID, time.Monday)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("18:00"), stored.EndTime)

	audit := store.Audit().All()
	require.Len(t, audit, 2)
	assert.Equal(t, domain.AuditScheduleUpserted, audit[0].Action)
	assert.Equal(t, domain.TableSchedules, audit[0].TargetTable)
}

func TestService_UpsertWeeklyInvalid(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.UpsertWeeklyRequest
	}{
		{"nil request", nil},
		{"missing admin", &models.UpsertWeeklyRequest{DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "17:00"}},
		{"end before start", &models.UpsertWeeklyRequest{AdminID: "a", DayOfWeek: time.Monday, StartTime: "17:00", EndTime: "09:00"}},
		{"bad weekday", &models.UpsertWeeklyRequest{AdminID: "a", DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"}},
		{"break outside", &models.UpsertWeeklyRequest{
			AdminID: "a", DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "17:00",
			Breaks: []domain.Break{{Start: "16:30", End: "17:30"}},
		}},
		{"overlapping breaks", &models.UpsertWeeklyRequest{
			AdminID: "a", DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "17:00",
			Breaks: []domain.Break{{Start: "12:00", End: "13:00"}, {Start: "12:30", End: "13:30"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertWeekly(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	assert.Empty(t, store.Audit().All())
}

func TestService_Exceptions(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	closed, err := svc.UpsertException(ctx, &models.UpsertExceptionRequest{
		AdminID:  "admin-1",
		Date:     friday,
		IsClosed: true,
		Notes:    ptr.Ptr("Αργία"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-10-17", closed.Date)
	assert.True(t, closed.IsClosed)

	// замена закрытого дня на сокращенный
	short, err := svc.UpsertException(ctx, &models.UpsertExceptionRequest{
		AdminID:   "admin-1",
		Date:      friday,
		StartTime: ptr.Ptr(types.TimeString("10:00")),
		EndTime:   ptr.Ptr(types.TimeString("14:00")),
	})
	require.NoError(t, err)
	assert.Equal(t, closed.ID, short.ID)

	stored, err := store.Schedule().GetException(ctx, friday)
	require.NoError(t, err)
	assert.True(t, stored.HasHours())

	require.NoError(t, svc.DeleteException(ctx, "admin-1", friday))
	assert.ErrorIs(t, svc.DeleteException(ctx, "admin-1", friday), ErrExceptionNotFound)

	actions := make([]domain.AuditAction, 0)
	for _, e := range store.Audit().All() {
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []domain.AuditAction{
		domain.AuditExceptionUpserted, domain.AuditExceptionUpserted, domain.AuditExceptionDeleted,
	}, actions)
}

func TestService_ExceptionInvalid(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.UpsertException(ctx, &models.UpsertExceptionRequest{AdminID: "a", Date: friday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpsertException(ctx, &models.UpsertExceptionRequest{
		AdminID:   "a",
		Date:      friday,
		StartTime: ptr.Ptr(types.TimeString("14:00")),
		EndTime:   ptr.Ptr(types.TimeString("10:00")),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpsertException(ctx, &models.UpsertExceptionRequest{AdminID: "a", IsClosed: true})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.ErrorIs(t, svc.DeleteException(ctx, "", friday), ErrInvalidInput)
}

func TestService_BlockedTimes(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	start := friday.Add(16 * time.Hour)
	created, err := svc.CreateBlocked(ctx, &models.CreateBlockedRequest{
		AdminID: "admin-1",
		StartAt: start,
		EndAt:   start.Add(2 * time.Hour),
		Reason:  "Κτηνίατρος",
	})
	require.NoError(t, err)

	from, to := friday, friday.Add(24*time.Hour)
	blocked, err := store.Schedule().ListBlockedInRange(ctx, resourceID, from, to)
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	assert.Equal(t, created.ID, blocked[0].ID)

	require.NoError(t, svc.DeleteBlocked(ctx, "admin-1", created.ID))
	assert.ErrorIs(t, svc.DeleteBlocked(ctx, "admin-1", created.ID), ErrBlockedTimeNotFound)

	blocked, err = store.Schedule().ListBlockedInRange(ctx, resourceID, from, to)
	require.NoError(t, err)
	assert.Empty(t, blocked)
	assert.Len(t, store.Audit().All(), 2)
}

func TestService_CreateBlockedInvalid(t *testing.T) {
	svc, store := newService(t)

	_, err := svc.CreateBlocked(context.Background(), &models.CreateBlockedRequest{
		AdminID: "admin-1",
		StartAt: friday.Add(10 * time.Hour),
		EndAt:   friday.Add(10 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, store.Audit().All())
}
