package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction tag of an admin-triggered change
type AuditAction string

const (
	AuditBookingCreated     AuditAction = "booking.create_manual"
	AuditBookingStatus      AuditAction = "booking.update_status"
	AuditBookingRescheduled AuditAction = "booking.reschedule"
	AuditNotificationResent AuditAction = "notification.resend"
	AuditScheduleUpserted   AuditAction = "schedule.upsert"
	AuditExceptionUpserted  AuditAction = "schedule_exception.upsert"
	AuditExceptionDeleted   AuditAction = "schedule_exception.delete"
	AuditBlockedCreated     AuditAction = "blocked_time.create"
	AuditBlockedDeleted     AuditAction = "blocked_time.delete"
	AuditCustomerNotes      AuditAction = "customer.update_notes"
)

// AuditLogEntry append-only record of an admin action
type AuditLogEntry struct {
	ID          uuid.UUID
	AdminID     string
	Action      AuditAction
	TargetTable string
	TargetID    string
	Payload     map[string]interface{}
	CreatedAt   time.Time
}

// NewAuditLogEntry builds an entry for the given target
func NewAuditLogEntry(adminID string, action AuditAction, table, targetID string, payload map[string]interface{}) *AuditLogEntry {
	return &AuditLogEntry{
		ID:          uuid.New(),
		AdminID:     adminID,
		Action:      action,
		TargetTable: table,
		TargetID:    targetID,
		Payload:     payload,
	}
}
