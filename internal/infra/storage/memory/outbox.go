package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	outboxRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/outbox"
)

// OutboxRepo notification queue
type OutboxRepo struct {
	s *Store
}

func (r *OutboxRepo) Enqueue(ctx context.Context, entries ...*domain.OutboxEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range entries {
		r.insert(ctx, e)
	}
	return nil
}

// EnqueueUnique mirrors ux_outbox_reminder: reminder templates are unique per booking and channel
func (r *OutboxRepo) EnqueueUnique(ctx context.Context, e *domain.OutboxEntry) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if e.Template.IsReminder() {
		for _, existing := range r.s.outbox {
			if existing.BookingID == e.BookingID && existing.Template == e.Template && existing.Channel == e.Channel {
				return false, nil
			}
		}
	}

	r.insert(ctx, e)
	return true, nil
}

func (r *OutboxRepo) ListDue(_ context.Context, now time.Time, maxAttempts, limit int) ([]*domain.OutboxEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	due := make([]*domain.OutboxEntry, 0)
	for _, e := range r.s.outbox {
		if e.Status == domain.OutboxPending && !e.RunAt.After(now) && e.Attempts < maxAttempts {
			due = append(due, cloneEntry(e))
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].RunAt.Before(due[j].RunAt) })

	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// Claim pending -> processing under the store lock
func (r *OutboxRepo) Claim(_ context.Context, id uuid.UUID, now time.Time) (*domain.OutboxEntry, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e := r.find(id)
	if e == nil || e.Status != domain.OutboxPending {
		return nil, false, nil
	}

	e.Status = domain.OutboxProcessing
	e.Attempts++
	claimedAt := now
	e.ClaimedAt = &claimedAt
	e.UpdatedAt = now

	return cloneEntry(e), true, nil
}

func (r *OutboxRepo) MarkSent(_ context.Context, id uuid.UUID, providerMessageID string, now time.Time) error {
	return r.transition(id, func(e *domain.OutboxEntry) {
		e.Status = domain.OutboxSent
		pid := providerMessageID
		e.ProviderMessageID = &pid
		e.LastError = nil
		e.UpdatedAt = now
	})
}

func (r *OutboxRepo) MarkRetry(_ context.Context, id uuid.UUID, runAt time.Time, lastError string, now time.Time) error {
	return r.transition(id, func(e *domain.OutboxEntry) {
		e.Status = domain.OutboxPending
		e.RunAt = runAt
		e.LastError = &lastError
		e.UpdatedAt = now
	})
}

func (r *OutboxRepo) MarkFailed(_ context.Context, id uuid.UUID, lastError string, now time.Time) error {
	return r.transition(id, func(e *domain.OutboxEntry) {
		e.Status = domain.OutboxFailed
		e.LastError = &lastError
		e.UpdatedAt = now
	})
}

func (r *OutboxRepo) ReclaimStale(_ context.Context, staleBefore time.Time, maxAttempts int, now time.Time) (domain.ReclaimResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result domain.ReclaimResult
	for _, e := range r.s.outbox {
		if e.Status != domain.OutboxProcessing || e.ClaimedAt == nil || !e.ClaimedAt.Before(staleBefore) {
			continue
		}
		if e.Attempts >= maxAttempts {
			msg := "processing timed out"
			e.Status = domain.OutboxFailed
			e.LastError = &msg
			result.Failed++
		} else {
			e.Status = domain.OutboxPending
			e.ClaimedAt = nil
			result.Requeued++
		}
		e.UpdatedAt = now
	}
	return result, nil
}

func (r *OutboxRepo) ListFailed(_ context.Context, limit int) ([]*domain.OutboxEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	failed := make([]*domain.OutboxEntry, 0)
	for i := len(r.s.outbox) - 1; i >= 0 && len(failed) < limit; i-- {
		if r.s.outbox[i].Status == domain.OutboxFailed {
			failed = append(failed, cloneEntry(r.s.outbox[i]))
		}
	}
	return failed, nil
}

// All returns every entry in insertion order
func (r *OutboxRepo) All() []*domain.OutboxEntry {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.OutboxEntry, 0, len(r.s.outbox))
	for _, e := range r.s.outbox {
		out = append(out, cloneEntry(e))
	}
	return out
}

// insert must be called with s.mu held
func (r *OutboxRepo) insert(ctx context.Context, e *domain.OutboxEntry) {
	now := r.s.now()
	stored := cloneEntry(e)
	stored.Status = domain.OutboxPending
	stored.Attempts = 0
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.outbox = append(r.s.outbox, stored)

	id := e.ID
	record(ctx, func() {
		for i, existing := range r.s.outbox {
			if existing.ID == id {
				r.s.outbox = append(r.s.outbox[:i], r.s.outbox[i+1:]...)
				return
			}
		}
	})
}

func (r *OutboxRepo) transition(id uuid.UUID, apply func(e *domain.OutboxEntry)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e := r.find(id)
	if e == nil || e.Status != domain.OutboxProcessing {
		return outboxRepo.ErrEntryNotFound
	}
	apply(e)
	return nil
}

func (r *OutboxRepo) find(id uuid.UUID) *domain.OutboxEntry {
	for _, e := range r.s.outbox {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func cloneEntry(e *domain.OutboxEntry) *domain.OutboxEntry {
	cp := *e
	if e.Payload != nil {
		cp.Payload = make(map[string]string, len(e.Payload))
		for k, v := range e.Payload {
			cp.Payload[k] = v
		}
	}
	return &cp
}
