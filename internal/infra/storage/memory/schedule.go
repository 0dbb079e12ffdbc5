package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
)

// ScheduleRepo weekly hours, date exceptions and blocked intervals
type ScheduleRepo struct {
	s *Store
}

func (r *ScheduleRepo) GetWeekly(_ context.Context, resourceID uuid.UUID, day time.Weekday) (*domain.WeeklySchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.weekly[weeklyKey{resourceID: resourceID, day: day}]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return cloneWeekly(w), nil
}

func (r *ScheduleRepo) UpsertWeekly(ctx context.Context, w *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := weeklyKey{resourceID: w.ResourceID, day: w.DayOfWeek}
	prev, existed := r.s.weekly[key]
	stored := cloneWeekly(w)
	if existed {
		stored.ID = prev.ID
	}
	r.s.weekly[key] = stored

	record(ctx, func() {
		if existed {
			r.s.weekly[key] = prev
		} else {
			delete(r.s.weekly, key)
		}
	})

	return cloneWeekly(stored), nil
}

func (r *ScheduleRepo) GetException(_ context.Context, date time.Time) (*domain.ScheduleException, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.exceptions[dateKey(date)]
	if !ok {
		return nil, scheduleRepo.ErrExceptionNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *ScheduleRepo) UpsertException(ctx context.Context, e *domain.ScheduleException) (*domain.ScheduleException, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := dateKey(e.Date)
	prev, existed := r.s.exceptions[key]
	stored := *e
	if existed {
		stored.ID = prev.ID
	}
	r.s.exceptions[key] = &stored

	record(ctx, func() {
		if existed {
			r.s.exceptions[key] = prev
		} else {
			delete(r.s.exceptions, key)
		}
	})

	cp := stored
	return &cp, nil
}

func (r *ScheduleRepo) DeleteException(ctx context.Context, date time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := dateKey(date)
	prev, ok := r.s.exceptions[key]
	if !ok {
		return scheduleRepo.ErrExceptionNotFound
	}
	delete(r.s.exceptions, key)
	record(ctx, func() { r.s.exceptions[key] = prev })
	return nil
}

func (r *ScheduleRepo) ListBlockedInRange(_ context.Context, resourceID uuid.UUID, from, to time.Time) ([]*domain.BlockedTime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.BlockedTime, 0)
	for _, b := range r.s.blocked {
		if b.ResourceID == resourceID && calendar.Overlaps(b.StartAt, b.EndAt, from, to) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (r *ScheduleRepo) CreateBlocked(ctx context.Context, b *domain.BlockedTime) (*domain.BlockedTime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b.CreatedAt = r.s.now()
	stored := *b
	r.s.blocked[b.ID] = &stored

	id := b.ID
	record(ctx, func() { delete(r.s.blocked, id) })

	cp := stored
	return &cp, nil
}

func (r *ScheduleRepo) DeleteBlocked(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, ok := r.s.blocked[id]
	if !ok {
		return scheduleRepo.ErrBlockedTimeNotFound
	}
	delete(r.s.blocked, id)
	record(ctx, func() { r.s.blocked[id] = prev })
	return nil
}

func cloneWeekly(w *domain.WeeklySchedule) *domain.WeeklySchedule {
	cp := *w
	cp.Breaks = append([]domain.Break(nil), w.Breaks...)
	return &cp
}
