package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/catalog"
)

// CatalogRepo read-only service catalog
type CatalogRepo struct {
	s *Store
}

func (r *CatalogRepo) GetServiceByID(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	svc, ok := r.s.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	cp := *svc
	return &cp, nil
}
