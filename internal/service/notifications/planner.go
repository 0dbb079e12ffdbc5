// Package notifications decides which outbox entries a booking event produces.
//
// The planner is pure: it never touches storage. Callers enqueue the returned
// entries inside the same transaction as the booking write, so a rolled-back
// booking never leaves messages behind.
package notifications

import (
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
)

// Planner builds outbox entries with payloads already localized to the business timezone
type Planner struct {
	settings domain.BusinessSettings
}

// NewPlanner creates a planner for the given business
func NewPlanner(settings domain.BusinessSettings) *Planner {
	return &Planner{settings: settings}
}

// Payload renders the template variables for a booking
func (p *Planner) Payload(b *domain.Booking, svc *domain.Service, c *domain.Customer) map[string]string {
	payload := map[string]string{
		domain.PayloadDate: calendar.GreekDate(b.StartAt, p.settings.Location),
		domain.PayloadTime: calendar.GreekTime(b.StartAt, p.settings.Location),
	}
	if svc != nil {
		payload[domain.PayloadService] = svc.Name
	}
	if c != nil {
		payload[domain.PayloadCustomerName] = c.Name
		payload[domain.PayloadCustomerPhone] = SMSRecipient(c)
	}
	return payload
}

// ForCreated entries for a freshly created booking: customer SMS, customer email
// if known, and the owner notice when a notify target is configured
func (p *Planner) ForCreated(b *domain.Booking, svc *domain.Service, c *domain.Customer, now time.Time) []*domain.OutboxEntry {
	customerTemplate := domain.TemplatePendingCustomer
	businessTemplate := domain.TemplatePendingBusiness
	if b.Status == domain.StatusConfirmed {
		customerTemplate = domain.TemplateConfirmedCustomer
		businessTemplate = domain.TemplateConfirmedBusiness
	}

	payload := p.Payload(b, svc, c)
	entries := p.forCustomer(b, c, customerTemplate, payload, now)

	if p.settings.NotifySMS != "" {
		entries = append(entries, domain.NewOutboxEntry(b.ID, domain.ChannelSMS, p.settings.NotifySMS, businessTemplate, payload, now))
	}
	if p.settings.NotifyEmail != "" {
		entries = append(entries, domain.NewOutboxEntry(b.ID, domain.ChannelEmail, p.settings.NotifyEmail, businessTemplate, payload, now))
	}

	return entries
}

// ForStatusChange customer entries for a status transition; only confirmed and
// canceled are announced
func (p *Planner) ForStatusChange(b *domain.Booking, svc *domain.Service, c *domain.Customer, now time.Time) []*domain.OutboxEntry {
	var template domain.TemplateID
	switch b.Status {
	case domain.StatusConfirmed:
		template = domain.TemplateConfirmedCustomer
	case domain.StatusCanceled:
		template = domain.TemplateCanceledCustomer
	default:
		return nil
	}
	return p.forCustomer(b, c, template, p.Payload(b, svc, c), now)
}

// ForReschedule customer entries for a moved booking; date_gr/time_gr keep the
// old interval, new_date_gr/new_time_gr carry the new one
func (p *Planner) ForReschedule(oldStart time.Time, b *domain.Booking, svc *domain.Service, c *domain.Customer, now time.Time) []*domain.OutboxEntry {
	payload := p.Payload(b, svc, c)
	payload[domain.PayloadDate] = calendar.GreekDate(oldStart, p.settings.Location)
	payload[domain.PayloadTime] = calendar.GreekTime(oldStart, p.settings.Location)
	payload[domain.PayloadNewDate] = calendar.GreekDate(b.StartAt, p.settings.Location)
	payload[domain.PayloadNewTime] = calendar.GreekTime(b.StartAt, p.settings.Location)
	return p.forCustomer(b, c, domain.TemplateRescheduledCustomer, payload, now)
}

// ForReminder a single reminder entry on the given channel, nil if the customer
// has no address for it
func (p *Planner) ForReminder(b *domain.Booking, svc *domain.Service, c *domain.Customer, template domain.TemplateID, channel domain.Channel, now time.Time) *domain.OutboxEntry {
	recipient := Recipient(c, channel)
	if recipient == "" {
		return nil
	}
	return domain.NewOutboxEntry(b.ID, channel, recipient, template, p.Payload(b, svc, c), now)
}

// ForResend a single entry re-sending template to the customer on channel
func (p *Planner) ForResend(b *domain.Booking, svc *domain.Service, c *domain.Customer, template domain.TemplateID, channel domain.Channel, now time.Time) *domain.OutboxEntry {
	return p.ForReminder(b, svc, c, template, channel, now)
}

func (p *Planner) forCustomer(b *domain.Booking, c *domain.Customer, template domain.TemplateID, payload map[string]string, now time.Time) []*domain.OutboxEntry {
	entries := make([]*domain.OutboxEntry, 0, 2)
	if to := Recipient(c, domain.ChannelSMS); to != "" {
		entries = append(entries, domain.NewOutboxEntry(b.ID, domain.ChannelSMS, to, template, payload, now))
	}
	if to := Recipient(c, domain.ChannelEmail); to != "" {
		entries = append(entries, domain.NewOutboxEntry(b.ID, domain.ChannelEmail, to, template, payload, now))
	}
	return entries
}

// Recipient customer address for channel, empty if none
func Recipient(c *domain.Customer, channel domain.Channel) string {
	if c == nil {
		return ""
	}
	switch channel {
	case domain.ChannelSMS:
		return SMSRecipient(c)
	case domain.ChannelEmail:
		if c.Email != nil {
			return *c.Email
		}
	}
	return ""
}

// SMSRecipient normalized phone, falling back to the raw one
func SMSRecipient(c *domain.Customer) string {
	if c.PhoneNormalized != "" {
		return c.PhoneNormalized
	}
	return c.Phone
}
