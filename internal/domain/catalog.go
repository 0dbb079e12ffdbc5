package domain

import "github.com/google/uuid"

// Service a bookable grooming service
type Service struct {
	ID          uuid.UUID
	Slug        string
	Name        string
	DurationMin int // service work time
	BufferMin   int // cleanup appended after the work time
	PriceFrom   float64
	Active      bool
}

// TotalSpan minutes the resource is occupied by one booking of this service
func (s *Service) TotalSpan() int {
	return s.DurationMin + s.BufferMin
}
