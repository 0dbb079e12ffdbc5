package domain

import (
	"time"

	"github.com/google/uuid"
)

// BusinessSettings immutable business configuration injected into components at construction
type BusinessSettings struct {
	Name         string
	Phone        string // E.164
	PhoneDisplay string
	Address      string
	BookingURL   string
	Location     *time.Location

	ResourceID          uuid.UUID // the single bookable resource
	AutoConfirm         bool      // web bookings are created confirmed
	MaxBookingDaysAhead int

	NotifySMS   string // business owner SMS target, empty = off
	NotifyEmail string // business owner email target, empty = off
}

// HasBusinessNotify returns true if at least one owner notify target is configured
func (s BusinessSettings) HasBusinessNotify() bool {
	return s.NotifySMS != "" || s.NotifyEmail != ""
}
