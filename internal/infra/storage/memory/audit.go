package memory

import (
	"context"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// AuditRepo append-only admin action log
type AuditRepo struct {
	s *Store
}

func (r *AuditRepo) Create(ctx context.Context, entry *domain.AuditLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entry.CreatedAt = r.s.now()
	cp := *entry
	r.s.audit = append(r.s.audit, &cp)

	n := len(r.s.audit) - 1
	record(ctx, func() { r.s.audit = r.s.audit[:n] })
	return nil
}

// All returns every audit row in insertion order
func (r *AuditRepo) All() []domain.AuditLogEntry {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.AuditLogEntry, 0, len(r.s.audit))
	for _, e := range r.s.audit {
		out = append(out, *e)
	}
	return out
}
