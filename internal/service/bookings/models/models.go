package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
)

// DefaultFailedLimit сколько failed записей очереди отдается по умолчанию
const DefaultFailedLimit = 50

// Request модели

// ListBookingsRequest запрос на получение записей за день
type ListBookingsRequest struct {
	Date   time.Time // локальная дата бизнеса
	Status *string   // фильтр по статусу (опционально)
}

// ResendNotificationRequest запрос на повторную отправку уведомления
type ResendNotificationRequest struct {
	AdminID  string `json:"-"`
	Channel  string `json:"channel"`
	Template string `json:"template"`
}

// UpdateNotesRequest запрос на изменение заметок о клиенте
type UpdateNotesRequest struct {
	AdminID string  `json:"-"`
	Notes   *string `json:"notes"`
}

// Response модели

// BookingResponse запись с клиентом и услугой
type BookingResponse struct {
	ID             uuid.UUID `json:"id"`
	Status         string    `json:"status"`
	Source         string    `json:"source"`
	StartAt        time.Time `json:"startAt"`
	EndAt          time.Time `json:"endAt"`
	Date           string    `json:"date"`      // "2025-10-15" в часовом поясе бизнеса
	StartTime      string    `json:"startTime"` // "10:00"
	PetType        string    `json:"petType"`
	PetBreed       *string   `json:"petBreed,omitempty"`
	PetWeightClass *string   `json:"petWeightClass,omitempty"`
	Notes          *string   `json:"notes,omitempty"`

	Service  *ServiceResponse  `json:"service,omitempty"`
	Customer *CustomerResponse `json:"customer,omitempty"`
}

// ServiceResponse краткие данные услуги
type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DurationMin int       `json:"durationMin"`
	BufferMin   int       `json:"bufferMin"`
}

// CustomerResponse данные клиента
type CustomerResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      *string   `json:"email,omitempty"`
	AdminNotes *string   `json:"adminNotes,omitempty"`
}

// BookingListResponse список записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// ResendNotificationResponse поставленная в очередь запись
type ResendNotificationResponse struct {
	EntryID   uuid.UUID `json:"entryId"`
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Template  string    `json:"template"`
}

// OutboxEntryResponse запись очереди уведомлений
type OutboxEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"bookingId"`
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Template  string    `json:"template"`
	Status    string    `json:"status"`
	Attempts  int       `json:"attempts"`
	RunAt     time.Time `json:"runAt"`
	LastError *string   `json:"lastError,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Конвертеры

// FromDomainBookingView конвертирует запись с клиентом и услугой
func FromDomainBookingView(v domain.BookingView, loc *time.Location) BookingResponse {
	b := v.Booking
	local := calendar.ToLocalWallClock(b.StartAt, loc)

	resp := BookingResponse{
		ID:             b.ID,
		Status:         string(b.Status),
		Source:         string(b.Source),
		StartAt:        b.StartAt,
		EndAt:          b.EndAt,
		Date:           local.Date,
		StartTime:      local.Time,
		PetType:        string(b.PetType),
		PetBreed:       b.PetBreed,
		PetWeightClass: b.PetWeightClass,
		Notes:          b.Notes,
	}
	if v.Service != nil {
		resp.Service = &ServiceResponse{
			ID:          v.Service.ID,
			Name:        v.Service.Name,
			DurationMin: v.Service.DurationMin,
			BufferMin:   v.Service.BufferMin,
		}
	}
	if v.Customer != nil {
		c := FromDomainCustomer(v.Customer)
		resp.Customer = &c
	}
	return resp
}

// FromDomainCustomer конвертирует клиента
func FromDomainCustomer(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		AdminNotes: c.AdminNotes,
	}
}

// FromDomainOutboxEntry конвертирует запись очереди
func FromDomainOutboxEntry(e *domain.OutboxEntry) OutboxEntryResponse {
	return OutboxEntryResponse{
		ID:        e.ID,
		BookingID: e.BookingID,
		Channel:   string(e.Channel),
		Recipient: e.Recipient,
		Template:  string(e.Template),
		Status:    string(e.Status),
		Attempts:  e.Attempts,
		RunAt:     e.RunAt,
		LastError: e.LastError,
		UpdatedAt: e.UpdatedAt,
	}
}

// FromDomainOutboxList конвертирует список записей очереди
func FromDomainOutboxList(entries []*domain.OutboxEntry) []OutboxEntryResponse {
	out := make([]OutboxEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromDomainOutboxEntry(e))
	}
	return out
}
