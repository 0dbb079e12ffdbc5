package update_booking_status

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
	if !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if req.AdminID == "" {
		return fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}
	return nil
}
