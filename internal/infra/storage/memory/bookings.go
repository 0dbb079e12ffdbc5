package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
)

// BookingRepo bookings and their reschedule trail
type BookingRepo struct {
	s *Store
}

// Create inserts the booking unless an active booking of the same resource overlaps it
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if b.Status.BlocksCapacity() && r.conflicts(b.ResourceID, b.ID, b.StartAt, b.EndAt) {
		return nil, bookingRepo.ErrSlotConflict
	}

	now := r.s.now()
	b.CreatedAt = now
	b.UpdatedAt = now
	stored := cloneBooking(b)
	r.s.bookings[b.ID] = stored

	id := b.ID
	record(ctx, func() { delete(r.s.bookings, id) })

	return cloneBooking(stored), nil
}

func (r *BookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

func (r *BookingRepo) ListActiveInRange(_ context.Context, resourceID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.ResourceID == resourceID && b.Status.BlocksCapacity() && calendar.Overlaps(b.StartAt, b.EndAt, from, to) {
			out = append(out, cloneBooking(b))
		}
	}
	sortBookings(out)
	return out, nil
}

func (r *BookingRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.ResourceID != filter.ResourceID {
			continue
		}
		if filter.From != nil && b.StartAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !b.StartAt.Before(*filter.To) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, b.Status) {
			continue
		}
		out = append(out, cloneBooking(b))
	}
	sortBookings(out)
	return out, nil
}

// UpdateStatus compare-and-swap on the current status
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok || b.Status != from {
		return nil, bookingRepo.ErrStatusChanged
	}
	if !from.BlocksCapacity() && to.BlocksCapacity() && r.conflicts(b.ResourceID, b.ID, b.StartAt, b.EndAt) {
		return nil, bookingRepo.ErrSlotConflict
	}

	prev := cloneBooking(b)
	b.Status = to
	b.UpdatedAt = r.s.now()
	record(ctx, func() { r.s.bookings[id] = prev })

	return cloneBooking(b), nil
}

// Reschedule moves an active booking, re-checking overlap against every other active booking
func (r *BookingRepo) Reschedule(ctx context.Context, id uuid.UUID, startAt, endAt time.Time) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok || !b.Status.BlocksCapacity() {
		return nil, bookingRepo.ErrBookingNotActive
	}
	if r.conflicts(b.ResourceID, b.ID, startAt, endAt) {
		return nil, bookingRepo.ErrSlotConflict
	}

	prev := cloneBooking(b)
	b.StartAt = startAt
	b.EndAt = endAt
	b.UpdatedAt = r.s.now()
	record(ctx, func() { r.s.bookings[id] = prev })

	return cloneBooking(b), nil
}

func (r *BookingRepo) CreateReschedule(ctx context.Context, rec *domain.BookingReschedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec.CreatedAt = r.s.now()
	cp := *rec
	r.s.reschedules = append(r.s.reschedules, &cp)

	n := len(r.s.reschedules) - 1
	record(ctx, func() { r.s.reschedules = r.s.reschedules[:n] })
	return nil
}

// Reschedules returns the reschedule trail of a booking
func (r *BookingRepo) Reschedules(bookingID uuid.UUID) []domain.BookingReschedule {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.BookingReschedule, 0)
	for _, rec := range r.s.reschedules {
		if rec.BookingID == bookingID {
			out = append(out, *rec)
		}
	}
	return out
}

// conflicts must be called with s.mu held
func (r *BookingRepo) conflicts(resourceID, selfID uuid.UUID, startAt, endAt time.Time) bool {
	for _, other := range r.s.bookings {
		if other.ID == selfID || other.ResourceID != resourceID || !other.Status.BlocksCapacity() {
			continue
		}
		if calendar.Overlaps(startAt, endAt, other.StartAt, other.EndAt) {
			return true
		}
	}
	return false
}

func containsStatus(list []domain.BookingStatus, s domain.BookingStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	cp := *b
	return &cp
}
