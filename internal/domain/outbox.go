package domain

import (
	"time"

	"github.com/google/uuid"
)

// Channel delivery channel of a notification
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// IsValid returns true for a supported channel
func (c Channel) IsValid() bool {
	return c == ChannelSMS || c == ChannelEmail
}

// OutboxStatus lifecycle of an outbox entry
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "pending"
	OutboxProcessing OutboxStatus = "processing"
	OutboxSent       OutboxStatus = "sent"
	OutboxFailed     OutboxStatus = "failed"
)

// TemplateID closed set of message templates
type TemplateID string

const (
	TemplatePendingCustomer     TemplateID = "booking_pending_customer"
	TemplateConfirmedCustomer   TemplateID = "booking_confirmed_customer"
	TemplateCanceledCustomer    TemplateID = "booking_canceled_customer"
	TemplateRescheduledCustomer TemplateID = "booking_rescheduled_customer"
	TemplateReminder24h         TemplateID = "reminder_24h_customer"
	TemplateReminder2h          TemplateID = "reminder_2h_customer"
	TemplatePendingBusiness     TemplateID = "booking_pending_business"
	TemplateConfirmedBusiness   TemplateID = "booking_confirmed_business"
)

// IsValid returns true for a template of the closed set
func (t TemplateID) IsValid() bool {
	switch t {
	case TemplatePendingCustomer, TemplateConfirmedCustomer, TemplateCanceledCustomer,
		TemplateRescheduledCustomer, TemplateReminder24h, TemplateReminder2h,
		TemplatePendingBusiness, TemplateConfirmedBusiness:
		return true
	}
	return false
}

// IsReminder returns true for templates that are queued at most once per booking and channel
func (t TemplateID) IsReminder() bool {
	return t == TemplateReminder24h || t == TemplateReminder2h
}

// Payload keys understood by the templates; date/time values are already localized
const (
	PayloadService       = "service"
	PayloadDate          = "date_gr"
	PayloadTime          = "time_gr"
	PayloadNewDate       = "new_date_gr"
	PayloadNewTime       = "new_time_gr"
	PayloadCustomerName  = "customer_name"
	PayloadCustomerPhone = "customer_phone"
)

// OutboxEntry durable pending message
type OutboxEntry struct {
	ID                uuid.UUID
	BookingID         uuid.UUID
	Channel           Channel
	Recipient         string
	Template          TemplateID
	Payload           map[string]string
	Status            OutboxStatus
	Attempts          int
	RunAt             time.Time // earliest dispatch time
	LastError         *string
	ProviderMessageID *string
	ClaimedAt         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewOutboxEntry builds a pending entry due at runAt
func NewOutboxEntry(bookingID uuid.UUID, channel Channel, recipient string, template TemplateID, payload map[string]string, runAt time.Time) *OutboxEntry {
	return &OutboxEntry{
		ID:        uuid.New(),
		BookingID: bookingID,
		Channel:   channel,
		Recipient: recipient,
		Template:  template,
		Payload:   payload,
		Status:    OutboxPending,
		RunAt:     runAt,
	}
}

// BackoffDelay retry delay after the given number of attempts: 2^attempts minutes
func BackoffDelay(attempts int) time.Duration {
	if attempts < 0 {
		attempts = 0
	}
	if attempts > 20 {
		attempts = 20
	}
	return time.Duration(1<<uint(attempts)) * time.Minute
}

// ReclaimResult counts of stale processing rows returned by a sweep
type ReclaimResult struct {
	Requeued int
	Failed   int
}
