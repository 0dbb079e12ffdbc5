// Package memory is an in-process implementation of every storage contract.
//
// All reads and writes go through one mutex, so the overlap check in
// BookingRepo.Create and the status check in OutboxRepo.Claim run in the
// same critical section as the write they guard. Transactions opened with
// Store.Do are serialized by a second mutex and rolled back through an undo
// journal carried in the context.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

type weeklyKey struct {
	resourceID uuid.UUID
	day        time.Weekday
}

// Store shared in-memory state
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	now  func() time.Time

	services    map[uuid.UUID]*domain.Service
	customers   []*domain.Customer // insertion order is "first match" order
	bookings    map[uuid.UUID]*domain.Booking
	reschedules []*domain.BookingReschedule
	weekly      map[weeklyKey]*domain.WeeklySchedule
	exceptions  map[string]*domain.ScheduleException
	blocked     map[uuid.UUID]*domain.BlockedTime
	outbox      []*domain.OutboxEntry
	audit       []*domain.AuditLogEntry
}

// New creates an empty store
func New() *Store {
	return &Store{
		now:        time.Now,
		services:   make(map[uuid.UUID]*domain.Service),
		bookings:   make(map[uuid.UUID]*domain.Booking),
		weekly:     make(map[weeklyKey]*domain.WeeklySchedule),
		exceptions: make(map[string]*domain.ScheduleException),
		blocked:    make(map[uuid.UUID]*domain.BlockedTime),
	}
}

// SetClock overrides the clock used for created_at/updated_at
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddService puts a service into the catalog
func (s *Store) AddService(svc *domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *svc
	s.services[svc.ID] = &cp
}

func (s *Store) Bookings() *BookingRepo   { return &BookingRepo{s: s} }
func (s *Store) Catalog() *CatalogRepo    { return &CatalogRepo{s: s} }
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }
func (s *Store) Schedule() *ScheduleRepo  { return &ScheduleRepo{s: s} }
func (s *Store) Outbox() *OutboxRepo      { return &OutboxRepo{s: s} }
func (s *Store) Audit() *AuditRepo        { return &AuditRepo{s: s} }

type journalKey struct{}

type journal struct {
	undo []func()
}

// Do runs fn as one transaction: on error or panic every write made through ctx is undone
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(journalKey{}).(*journal); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	j := &journal{}
	defer func() {
		if p := recover(); p != nil {
			s.rollback(j)
			panic(p)
		}
		if err != nil {
			s.rollback(j)
		}
	}()

	return fn(context.WithValue(ctx, journalKey{}, j))
}

func (s *Store) rollback(j *journal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
}

// record registers an undo step; must be called with s.mu held
func record(ctx context.Context, undo func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok {
		j.undo = append(j.undo, undo)
	}
}

func dateKey(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func sortBookings(list []*domain.Booking) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].StartAt.Before(list[j].StartAt)
	})
}
