package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer pet owner
type Customer struct {
	ID              uuid.UUID
	Name            string
	Phone           string // as entered
	PhoneNormalized string // E.164, recomputed on every name/phone edit
	Email           *string
	AdminNotes      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ContactDetails fields refreshed on every booking by the same customer
type ContactDetails struct {
	Name            string
	Phone           string
	PhoneNormalized string
	Email           *string
}
