package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	getAvailableSlots "github.com/m04kA/SMC-GroomingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
)

// SlotResponse один слот
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// ToUseCaseRequest разбирает query параметры date (YYYY-MM-DD) и service (uuid)
func ToUseCaseRequest(date, service string, loc *time.Location) (*getAvailableSlots.Request, error) {
	day, err := calendar.ParseDate(date, loc)
	if err != nil {
		return nil, err
	}
	serviceID, err := uuid.Parse(service)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{Date: day, ServiceID: serviceID}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	out := &SlotsResponse{Slots: make([]SlotResponse, 0, len(resp.Slots))}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{Time: s.Time.String(), Available: s.Available})
	}
	return out
}
