package domain

import "github.com/m04kA/SMC-GroomingService/pkg/types"

// AvailableSlot represents a start time that can currently be booked
type AvailableSlot struct {
	Time      types.TimeString
	Available bool
}
