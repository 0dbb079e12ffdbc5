package create_booking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-GroomingService/internal/service/notifications"
	"github.com/m04kA/SMC-GroomingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-GroomingService/pkg/ptr"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// stubSlots отдает заранее заданный список слотов
type stubSlots struct {
	times []string
	calls int32
}

func (s *stubSlots) Execute(_ context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error) {
	atomic.AddInt32(&s.calls, 1)
	resp := &get_available_slots.Response{Date: req.Date, ServiceID: req.ServiceID}
	for _, t := range s.times {
		resp.Slots = append(resp.Slots, domain.AvailableSlot{Time: types.TimeString(t), Available: true})
	}
	return resp, nil
}

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *recordingMetrics) BookingAttempt(source, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, source+":"+outcome)
}

var (
	athens, _  = time.LoadLocation("Europe/Athens")
	resourceID = uuid.MustParse("3f1c2a9e-8a4b-4d7e-9a51-0c2f6b1d7e11")
	serviceID  = uuid.MustParse("b6a7c1d2-3e4f-4a5b-8c9d-0e1f2a3b4c5d")
	monday     = time.Date(2025, time.October, 13, 0, 0, 0, 0, athens)
	now        = time.Date(2025, time.October, 13, 7, 0, 0, 0, athens)
)

type fixture struct {
	store   *memory.Store
	slots   *stubSlots
	metrics *recordingMetrics
	uc      *UseCase
}

func newFixture(t *testing.T, settings domain.BusinessSettings) *fixture {
	t.Helper()

	settings.Location = athens
	settings.ResourceID = resourceID
	if settings.MaxBookingDaysAhead == 0 {
		settings.MaxBookingDaysAhead = domain.DefaultMaxBookingDaysAhead
	}

	store := memory.New()
	store.SetClock(func() time.Time { return now })
	store.AddService(&domain.Service{
		ID:          serviceID,
		Slug:        "full-grooming",
		Name:        "Πλήρης περιποίηση",
		DurationMin: 60,
		BufferMin:   15,
		Active:      true,
	})

	slots := &stubSlots{times: []string{"09:00", "09:30", "10:00", "10:30", "11:00"}}
	metrics := &recordingMetrics{}

	uc := NewUseCase(
		store.Catalog(),
		store.Customers(),
		store.Bookings(),
		store.Outbox(),
		store.Audit(),
		slots,
		notifications.NewPlanner(settings),
		store,
		metrics,
		settings,
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: now}

	return &fixture{store: store, slots: slots, metrics: metrics, uc: uc}
}

func webRequest(start string) *Request {
	return &Request{
		ServiceID: serviceID,
		Date:      monday,
		StartTime: types.TimeString(start),
		OwnerName: "Μαρία Παπαδοπούλου",
		Phone:     "694 896 5371",
	}
}

func TestExecute_WebBookingEnqueuesCustomerSMS(t *testing.T) {
	f := newFixture(t, domain.BusinessSettings{})

	resp, err := f.uc.Execute(context.Background(), webRequest("10:00"))
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, domain.SourceWebsite, b.Source)
	assert.Equal(t, domain.PetDog, b.PetType)
	assert.Equal(t, time.Date(2025, time.October, 13, 10, 0, 0, 0, athens), b.StartAt)
	assert.Equal(t, 75*time.Minute, b.EndAt.Sub(b.StartAt))
	assert.Equal(t, resourceID, b.ResourceID)

	entries := f.store.Outbox().All()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ChannelSMS, entries[0].Channel)
	assert.Equal(t, "+306948965371", entries[0].Recipient)
	assert.Equal(t, domain.TemplatePendingCustomer, entries[0].Template)
	assert.Equal(t, domain.OutboxPending, entries[0].Status)
	assert.Equal(t, b.ID, entries[0].BookingID)
	assert.Equal(t, 1, resp.NotificationsQueued)

	assert.Equal(t, []string{"website:created"}, f.metrics.outcomes)
}

func TestExecute_EmailAndOwnerNotices(t *testing.T) {
	f := newFixture(t, domain.BusinessSettings{NotifySMS: "+306900000000"})

	req := webRequest("10:00")
	req.Email = ptr.Ptr("maria@example.gr")

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	entries := f.store.Outbox().All()
	require.Len(t, entries, 3)

	byTemplate := make(map[domain.TemplateID][]domain.Channel)
	for _, e := range entries {
		byTemplate[e.Template] = append(byTemplate[e.Template], e.Channel)
	}
	assert.ElementsMatch(t, []domain.Channel{domain.ChannelSMS, domain.ChannelEmail}, byTemplate[domain.TemplatePendingCustomer])
	assert.Equal(t, []domain.Channel{domain.ChannelSMS}, byTemplate[domain.TemplatePendingBusiness])
}

func TestExecute_AutoConfirm(t *testing.T) {
	f := newFixture(t, domain.BusinessSettings{AutoConfirm: true})

	resp, err := f.uc.Execute(context.Background(), webRequest("09:30"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)

	entries := f.store.Outbox().All()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.TemplateConfirmedCustomer, entries[0].Template)
}

func TestExecute_StorageConflictLeavesNoTrace(t *testing.T) {
	f := newFixture(t, domain.BusinessSettings{})
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, webRequest("10:00"))
	require.NoError(t, err)

	// слот все еще "предлагается" устаревшим расчетом
	req := webRequest("10:30")
	req.Phone = "6911111111"
	req.Email = ptr.Ptr("other@example.gr")

	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	assert.Len(t, f.store.Customers().All(), 1)
	assert.Len(t, f.store.Outbox().All(), 1)
	assert.Equal(t, []string{"website:created", "website:conflict"}, f.metrics.outcomes)
}

func TestExecute_NotOfferedSlotRejected(t *testing.T) {
	f := newFixture(t, domain.BusinessSettings{})

	_, err := f.uc.Execute(context.Background(), webRequest("17:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.store.Customers().All())
}

func TestExecute_ConcurrentCreatesExactlyOneWins(t *testing.T) {
	f := newFixture(t, domain.BusinessSettings{})

	const n = 16
	var (
		wg        sync.WaitGroup
		successes int32
		conflicts int32
	)

	starts := []string{"10:00", "10:30", "11:00"}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := webRequest(starts[i%len(starts)])
			_, err := f.uc.Execute(context.Background(), req)
			switch {
			case err == nil:
				atomic.AddInt32(&successes, 1)
			case errors.Is(err, ErrSlotNotAvailable):
				atomic.AddInt32(&conflicts, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes)
	assert.EqualValues(t, n-1, conflicts)
	assert.Len(t, f.store.Outbox().All(), 1)
}

func TestExecute_ManualBooking(t *testing.T) {
	f := newFixture(t, domain.BusinessSettings{})

	req := webRequest("10:00")
	req.PetType = domain.PetCat
	req.Manual = &ManualOptions{AdminID: "admin-1", SendNotification: true}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	assert.Equal(t, domain.SourcePhone, resp.Booking.Source)
	assert.Equal(t, domain.PetCat, resp.Booking.PetType)

	audit := f.store.Audit().All()
	require.Len(t, audit, 1)
	assert.Equal(t, domain.AuditBookingCreated, audit[0].Action)
	assert.Equal(t, "admin-1", audit[0].AdminID)
	assert.Equal(t, resp.Booking.ID.String(), audit[0].TargetID)

	entries := f.store.Outbox().All()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.TemplateConfirmedCustomer, entries[0].Template)
	assert.Equal(t, []string{"phone:created"}, f.metrics.outcomes)
}

func TestExecute_ManualWithoutNotification(t *testing.T) {
	f := newFixture(t, domain.BusinessSettings{NotifySMS: "+306900000000"})

	req := webRequest("10:00")
	req.Manual = &ManualOptions{AdminID: "admin-1", SendNotification: false}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, resp.NotificationsQueued)
	assert.Empty(t, f.store.Outbox().All())
}

func TestExecute_ForceBookingSkipsOnlyAdvisoryCheck(t *testing.T) {
	f := newFixture(t, domain.BusinessSettings{})
	ctx := context.Background()

	req := webRequest("17:00")
	req.Manual = &ManualOptions{AdminID: "admin-1", ForceBooking: true}

	_, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Zero(t, atomic.LoadInt32(&f.slots.calls))

	// хранилище все равно отклоняет пересечение
	clash := webRequest("16:30")
	clash.Manual = &ManualOptions{AdminID: "admin-1", ForceBooking: true}
	_, err = f.uc.Execute(ctx, clash)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, f.store.Audit().All(), 1)
}

func TestExecute_CustomerLookupPrecedence(t *testing.T) {
	f := newFixture(t, domain.BusinessSettings{})
	ctx := context.Background()

	byRaw, err := f.store.Customers().Create(ctx, &domain.Customer{
		ID:    uuid.New(),
		Name:  "Παλιά εγγραφή",
		Phone: "694 896 5371",
	})
	require.NoError(t, err)
	byNormalized, err := f.store.Customers().Create(ctx, &domain.Customer{
		ID:              uuid.New(),
		Name:            "Μαρία",
		Phone:           "+30 694 896 5371",
		PhoneNormalized: "+306948965371",
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(ctx, webRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, byNormalized.ID, resp.Customer.ID)
	assert.Equal(t, "Μαρία Παπαδοπούλου", resp.Customer.Name)
	assert.Equal(t, "694 896 5371", resp.Customer.Phone)
	assert.NotEqual(t, byRaw.ID, resp.Customer.ID)
	assert.Len(t, f.store.Customers().All(), 2)
}

func TestExecute_CustomerFoundByRawPhone(t *testing.T) {
	f := newFixture(t, domain.BusinessSettings{})
	ctx := context.Background()

	legacy, err := f.store.Customers().Create(ctx, &domain.Customer{
		ID:    uuid.New(),
		Name:  "Μαρία",
		Phone: "694 896 5371",
		Email: ptr.Ptr("old@example.gr"),
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(ctx, webRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, legacy.ID, resp.Customer.ID)
	assert.Equal(t, "+306948965371", resp.Customer.PhoneNormalized)
	// email без нового значения не затирается
	require.NotNil(t, resp.Customer.Email)
	assert.Equal(t, "old@example.gr", *resp.Customer.Email)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "short name", mutate: func(r *Request) { r.OwnerName = " Μ " }, wantErr: ErrInvalidInput},
		{name: "short phone", mutate: func(r *Request) { r.Phone = "69489" }, wantErr: ErrInvalidInput},
		{name: "bad email", mutate: func(r *Request) { r.Email = ptr.Ptr("not-an-email") }, wantErr: ErrInvalidInput},
		{name: "bad pet type", mutate: func(r *Request) { r.PetType = "hamster" }, wantErr: ErrInvalidInput},
		{name: "bad time", mutate: func(r *Request) { r.StartTime = "25:99" }, wantErr: ErrInvalidInput},
		{name: "single-digit hour", mutate: func(r *Request) { r.StartTime = "9:00" }, wantErr: ErrInvalidInput},
		{name: "no service", mutate: func(r *Request) { r.ServiceID = uuid.Nil }, wantErr: ErrInvalidInput},
		{name: "past date", mutate: func(r *Request) { r.Date = monday.AddDate(0, 0, -1) }, wantErr: ErrInvalidDate},
		{name: "beyond horizon", mutate: func(r *Request) { r.Date = monday.AddDate(0, 0, 31) }, wantErr: ErrInvalidDate},
		{name: "unknown service", mutate: func(r *Request) { r.ServiceID = uuid.New() }, wantErr: ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, domain.BusinessSettings{})
			req := webRequest("10:00")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.store.Customers().All())
			assert.Equal(t, []string{"website:rejected"}, f.metrics.outcomes)
		})
	}
}

func TestExecute_EmptyEmailIsIgnored(t *testing.T) {
	f := newFixture(t, domain.BusinessSettings{})

	req := webRequest("10:00")
	req.Email = ptr.Ptr("  ")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.Customer.Email)
	assert.Len(t, f.store.Outbox().All(), 1)
}

func TestExecute_HorizonEdgeIsAllowed(t *testing.T) {
	f := newFixture(t, domain.BusinessSettings{})

	req := webRequest("10:00")
	req.Date = monday.AddDate(0, 0, domain.DefaultMaxBookingDaysAhead)

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}
