package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	customerRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/customer"
)

// CustomerRepo customers in insertion order
type CustomerRepo struct {
	s *Store
}

func (r *CustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	return r.find(func(c *domain.Customer) bool { return c.ID == id })
}

func (r *CustomerRepo) FindByNormalizedPhone(_ context.Context, phone string) (*domain.Customer, error) {
	return r.find(func(c *domain.Customer) bool { return c.PhoneNormalized == phone })
}

func (r *CustomerRepo) FindByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	return r.find(func(c *domain.Customer) bool { return c.Phone == phone })
}

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	c.CreatedAt = now
	c.UpdatedAt = now
	stored := cloneCustomer(c)
	r.s.customers = append(r.s.customers, stored)

	n := len(r.s.customers) - 1
	record(ctx, func() { r.s.customers = r.s.customers[:n] })

	return cloneCustomer(stored), nil
}

func (r *CustomerRepo) UpdateContact(ctx context.Context, id uuid.UUID, contact domain.ContactDetails) (*domain.Customer, error) {
	return r.update(ctx, id, func(c *domain.Customer) {
		c.Name = contact.Name
		c.Phone = contact.Phone
		c.PhoneNormalized = contact.PhoneNormalized
		if contact.Email != nil {
			email := *contact.Email
			c.Email = &email
		}
	})
}

func (r *CustomerRepo) UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) (*domain.Customer, error) {
	return r.update(ctx, id, func(c *domain.Customer) {
		c.AdminNotes = notes
	})
}

// All returns every stored customer
func (r *CustomerRepo) All() []*domain.Customer {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		out = append(out, cloneCustomer(c))
	}
	return out
}

func (r *CustomerRepo) find(match func(c *domain.Customer) bool) (*domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.customers {
		if match(c) {
			return cloneCustomer(c), nil
		}
	}
	return nil, customerRepo.ErrCustomerNotFound
}

func (r *CustomerRepo) update(ctx context.Context, id uuid.UUID, apply func(c *domain.Customer)) (*domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, c := range r.s.customers {
		if c.ID != id {
			continue
		}
		prev := cloneCustomer(c)
		apply(c)
		c.UpdatedAt = r.s.now()

		idx := i
		record(ctx, func() { r.s.customers[idx] = prev })
		return cloneCustomer(c), nil
	}
	return nil, customerRepo.ErrCustomerNotFound
}

func cloneCustomer(c *domain.Customer) *domain.Customer {
	cp := *c
	return &cp
}
