package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	reschedule "github.com/m04kA/SMC-GroomingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *RescheduleRequest) ToUseCaseRequest(bookingID uuid.UUID, adminID string, loc *time.Location) (*reschedule.Request, error) {
	date, err := calendar.ParseDate(r.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	start, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("invalid time: %w", err)
	}
	return &reschedule.Request{
		BookingID: bookingID,
		Date:      date,
		StartTime: start,
		AdminID:   adminID,
	}, nil
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	BookingID  uuid.UUID `json:"bookingId"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
	OldStartAt time.Time `json:"oldStartAt"`
	Date       string    `json:"date"` // новая дата в часовом поясе бизнеса
	Time       string    `json:"time"`
	OldDate    string    `json:"oldDate"`
	OldTime    string    `json:"oldTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reschedule.Response, loc *time.Location) *RescheduleResponse {
	next := calendar.ToLocalWallClock(resp.Booking.StartAt, loc)
	prev := calendar.ToLocalWallClock(resp.Reschedule.OldStartAt, loc)

	return &RescheduleResponse{
		BookingID:  resp.Booking.ID,
		StartAt:    resp.Booking.StartAt.In(loc),
		EndAt:      resp.Booking.EndAt.In(loc),
		OldStartAt: resp.Reschedule.OldStartAt.In(loc),
		Date:       next.Date,
		Time:       next.Time,
		OldDate:    prev.Date,
		OldTime:    prev.Time,
	}
}
