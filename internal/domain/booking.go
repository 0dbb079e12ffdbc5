package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCanceled  BookingStatus = "canceled"
	StatusNoShow    BookingStatus = "no_show"
)

// statusTransitions allowed lifecycle moves; terminal statuses have no entry
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusCanceled, StatusNoShow},
}

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal returns true if no transition out of s is permitted
func (s BookingStatus) IsTerminal() bool {
	_, ok := statusTransitions[s]
	return !ok
}

// CanTransitionTo returns true if s -> next is an allowed lifecycle move
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BlocksCapacity returns true if a booking in this status occupies its interval
func (s BookingStatus) BlocksCapacity() bool {
	return s == StatusPending || s == StatusConfirmed
}

// BookingSource where the booking came from
type BookingSource string

const (
	SourceWebsite BookingSource = "website"
	SourcePhone   BookingSource = "phone"
)

// PetType kind of animal being groomed
type PetType string

const (
	PetDog   PetType = "dog"
	PetCat   PetType = "cat"
	PetOther PetType = "other"
)

// IsValid returns true for a known pet type
func (p PetType) IsValid() bool {
	return p == PetDog || p == PetCat || p == PetOther
}

// Booking represents a reservation of the resource for [StartAt, EndAt)
type Booking struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	ServiceID  uuid.UUID
	ResourceID uuid.UUID
	StartAt    time.Time
	EndAt      time.Time // StartAt + duration + buffer, fixed at creation/reschedule
	Status     BookingStatus
	Source     BookingSource

	PetType        PetType
	PetBreed       *string
	PetWeightClass *string
	Notes          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its interval
func (b *Booking) IsActive() bool {
	return b.Status.BlocksCapacity()
}

// BookingReschedule append-only record of a booking move
type BookingReschedule struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	OldStartAt time.Time
	OldEndAt   time.Time
	NewStartAt time.Time
	NewEndAt   time.Time
	Actor      string
	CreatedAt  time.Time
}

// BookingsFilter фильтр для выборки бронирований ресурса
type BookingsFilter struct {
	ResourceID uuid.UUID
	From       *time.Time      // начало периода (включительно), если nil - без ограничения
	To         *time.Time      // конец периода (не включительно), если nil - без ограничения
	Statuses   []BookingStatus // если пусто - все статусы
}

// BookingView booking joined with its customer and service for admin listings
type BookingView struct {
	Booking  *Booking
	Customer *Customer
	Service  *Service
}
