package outbox

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	sqltypes "github.com/jmoiron/sqlx/types"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

var outboxColumns = []string{
	"id",
	"booking_id",
	"channel",
	"recipient",
	"template",
	"payload",
	"status",
	"attempts",
	"run_at",
	"last_error",
	"provider_message_id",
	"claimed_at",
	"created_at",
	"updated_at",
}

// entryRow строка notification_outbox для sqlx.StructScan
type entryRow struct {
	ID                uuid.UUID         `db:"id"`
	BookingID         uuid.UUID         `db:"booking_id"`
	Channel           string            `db:"channel"`
	Recipient         string            `db:"recipient"`
	Template          string            `db:"template"`
	Payload           sqltypes.JSONText `db:"payload"`
	Status            string            `db:"status"`
	Attempts          int               `db:"attempts"`
	RunAt             time.Time         `db:"run_at"`
	LastError         sql.NullString    `db:"last_error"`
	ProviderMessageID sql.NullString    `db:"provider_message_id"`
	ClaimedAt         sql.NullTime      `db:"claimed_at"`
	CreatedAt         time.Time         `db:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at"`
}

func (r *entryRow) toDomain() (*domain.OutboxEntry, error) {
	payload := map[string]string{}
	if len(r.Payload) > 0 {
		if err := r.Payload.Unmarshal(&payload); err != nil {
			return nil, err
		}
	}

	e := &domain.OutboxEntry{
		ID:        r.ID,
		BookingID: r.BookingID,
		Channel:   domain.Channel(r.Channel),
		Recipient: r.Recipient,
		Template:  domain.TemplateID(r.Template),
		Payload:   payload,
		Status:    domain.OutboxStatus(r.Status),
		Attempts:  r.Attempts,
		RunAt:     r.RunAt,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.LastError.Valid {
		e.LastError = &r.LastError.String
	}
	if r.ProviderMessageID.Valid {
		e.ProviderMessageID = &r.ProviderMessageID.String
	}
	if r.ClaimedAt.Valid {
		e.ClaimedAt = &r.ClaimedAt.Time
	}
	return e, nil
}
