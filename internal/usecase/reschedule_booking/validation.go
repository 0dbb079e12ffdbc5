package reschedule_booking

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if req.AdminID == "" {
		return fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}
	return nil
}
