package domain

// Slot generation
const (
	SlotStepMinutes = 30
)

// Business validation constants
const (
	MinCustomerNameLength = 2
	MinPhoneLength        = 10
	MaxNameLength         = 100
	MaxNotesLength        = 500
	MaxBreedLength        = 100
	MaxReasonLength       = 500

	DefaultMaxBookingDaysAhead = 30
)

// Outbox defaults
const (
	DefaultOutboxBatchSize   = 50
	DefaultOutboxMaxAttempts = 5
	DefaultStaleAfterMinutes = 15
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that occupy the resource
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// Audit target tables
const (
	TableBookings           = "bookings"
	TableSchedules          = "schedules"
	TableScheduleExceptions = "schedule_exceptions"
	TableBlockedTimes       = "blocked_times"
	TableCustomers          = "customers"
	TableOutbox             = "notification_outbox"
)
