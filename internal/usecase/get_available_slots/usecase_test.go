package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-GroomingService/pkg/ptr"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	athens, _  = time.LoadLocation("Europe/Athens")
	resourceID = uuid.MustParse("3f1c2a9e-8a4b-4d7e-9a51-0c2f6b1d7e11")
	serviceID  = uuid.MustParse("b6a7c1d2-3e4f-4a5b-8c9d-0e1f2a3b4c5d")
	// понедельник
	monday = time.Date(2025, time.October, 13, 0, 0, 0, 0, athens)
)

type fixture struct {
	store *memory.Store
	uc    *UseCase
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	store := memory.New()
	store.AddService(&domain.Service{
		ID:          serviceID,
		Slug:        "full-grooming",
		Name:        "Πλήρης περιποίηση",
		DurationMin: 60,
		BufferMin:   15,
		Active:      true,
	})

	_, err := store.Schedule().UpsertWeekly(context.Background(), &domain.WeeklySchedule{
		ID:         uuid.New(),
		ResourceID: resourceID,
		DayOfWeek:  time.Monday,
		StartTime:  "09:00",
		EndTime:    "18:00",
	})
	require.NoError(t, err)

	settings := domain.BusinessSettings{Location: athens, ResourceID: resourceID}
	uc := NewUseCase(store.Catalog(), store.Schedule(), store.Bookings(), settings, nopLogger{})
	uc.timeProvider = fixedTime{now: now}

	return &fixture{store: store, uc: uc}
}

func (f *fixture) addBooking(t *testing.T, start, end string, status domain.BookingStatus) {
	t.Helper()
	_, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		ServiceID:  serviceID,
		ResourceID: resourceID,
		StartAt:    types.TimeString(start).On(monday, athens),
		EndAt:      types.TimeString(end).On(monday, athens),
		Status:     status,
		Source:     domain.SourceWebsite,
		PetType:    domain.PetDog,
	})
	require.NoError(t, err)
}

func slotTimes(resp *Response) []string {
	out := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		out = append(out, s.Time.String())
	}
	return out
}

func earlyMorning() time.Time {
	return time.Date(2025, time.October, 13, 7, 0, 0, 0, athens)
}

func TestExecute_EmptyDay(t *testing.T) {
	f := newFixture(t, earlyMorning())

	resp, err := f.uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID})
	require.NoError(t, err)

	times := slotTimes(resp)
	require.NotEmpty(t, times)
	assert.Equal(t, "09:00", times[0])
	assert.Equal(t, "16:30", times[len(times)-1])
	assert.Len(t, times, 16)
	assert.Equal(t, 75, resp.TotalSpan)
	for _, s := range resp.Slots {
		assert.True(t, s.Available)
	}
}

func TestExecute_ExistingBookingBlocksOverlappingStarts(t *testing.T) {
	f := newFixture(t, earlyMorning())
	f.addBooking(t, "10:00", "11:15", domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID})
	require.NoError(t, err)

	times := slotTimes(resp)
	for _, excluded := range []string{"09:00", "09:30", "10:00", "10:30", "11:00"} {
		assert.NotContains(t, times, excluded)
	}
	assert.Equal(t, "11:30", times[0])
	assert.Equal(t, "16:30", times[len(times)-1])
}

func TestExecute_InactiveBookingsDoNotBlock(t *testing.T) {
	f := newFixture(t, earlyMorning())
	f.addBooking(t, "10:00", "11:15", domain.StatusCanceled)
	f.addBooking(t, "12:00", "13:15", domain.StatusNoShow)

	resp, err := f.uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 16)
}

func TestExecute_ClosedException(t *testing.T) {
	f := newFixture(t, earlyMorning())
	f.addBooking(t, "10:00", "11:15", domain.StatusPending)

	_, err := f.store.Schedule().UpsertException(context.Background(), &domain.ScheduleException{
		ID:       uuid.New(),
		Date:     monday,
		IsClosed: true,
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ExceptionHoursOverrideWeekly(t *testing.T) {
	f := newFixture(t, earlyMorning())

	_, err := f.store.Schedule().UpsertException(context.Background(), &domain.ScheduleException{
		ID:        uuid.New(),
		Date:      monday,
		StartTime: ptr.Ptr(types.TimeString("12:00")),
		EndTime:   ptr.Ptr(types.TimeString("14:30")),
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID})
	require.NoError(t, err)
	assert.Equal(t, []string{"12:00", "12:30", "13:00"}, slotTimes(resp))
}

func TestExecute_NoScheduleForWeekday(t *testing.T) {
	f := newFixture(t, earlyMorning())

	resp, err := f.uc.Execute(context.Background(), &Request{Date: monday.AddDate(0, 0, 1), ServiceID: serviceID})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BreaksAndBlockedTime(t *testing.T) {
	f := newFixture(t, earlyMorning())
	ctx := context.Background()

	_, err := f.store.Schedule().UpsertWeekly(ctx, &domain.WeeklySchedule{
		ID:         uuid.New(),
		ResourceID: resourceID,
		DayOfWeek:  time.Monday,
		StartTime:  "09:00",
		EndTime:    "18:00",
		Breaks:     []domain.Break{{Start: "13:00", End: "14:00"}},
	})
	require.NoError(t, err)

	_, err = f.store.Schedule().CreateBlocked(ctx, &domain.BlockedTime{
		ID:         uuid.New(),
		ResourceID: resourceID,
		StartAt:    types.TimeString("16:00").On(monday, athens),
		EndAt:      types.TimeString("18:00").On(monday, athens),
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(ctx, &Request{Date: monday, ServiceID: serviceID})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "14:00", "14:30"}, slotTimes(resp))
}

func TestExecute_SkipsPastStartsToday(t *testing.T) {
	now := time.Date(2025, time.October, 13, 15, 10, 0, 0, athens)
	f := newFixture(t, now)

	resp, err := f.uc.Execute(context.Background(), &Request{Date: monday, ServiceID: serviceID})
	require.NoError(t, err)
	assert.Equal(t, []string{"15:30", "16:00", "16:30"}, slotTimes(resp))
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(t, earlyMorning())
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(ctx, &Request{Date: monday, ServiceID: uuid.New()})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	f.store.AddService(&domain.Service{ID: serviceID, DurationMin: 60, Active: false})
	_, err = f.uc.Execute(ctx, &Request{Date: monday, ServiceID: serviceID})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestResolveWindow(t *testing.T) {
	weekly := &domain.WeeklySchedule{StartTime: "09:00", EndTime: "18:00", Breaks: []domain.Break{{Start: "13:00", End: "14:00"}}}

	w, open := resolveWindow(weekly, nil)
	require.True(t, open)
	assert.Equal(t, types.TimeString("09:00"), w.Start)
	assert.Len(t, w.Breaks, 1)

	_, open = resolveWindow(weekly, &domain.ScheduleException{IsClosed: true})
	assert.False(t, open)

	_, open = resolveWindow(nil, nil)
	assert.False(t, open)

	// исключение без часов не меняет недельное окно
	w, open = resolveWindow(weekly, &domain.ScheduleException{})
	require.True(t, open)
	assert.Equal(t, types.TimeString("18:00"), w.End)

	w, open = resolveWindow(nil, &domain.ScheduleException{StartTime: ptr.Ptr(types.TimeString("10:00")), EndTime: ptr.Ptr(types.TimeString("12:00"))})
	require.True(t, open)
	assert.Equal(t, types.TimeString("10:00"), w.Start)
	assert.Empty(t, w.Breaks)
}
