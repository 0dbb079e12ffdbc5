package create_booking

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	createBooking "github.com/m04kA/SMC-GroomingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
	"github.com/m04kA/SMC-GroomingService/pkg/ptr"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

// CreateBookingRequest HTTP request model формы бронирования
type CreateBookingRequest struct {
	ServiceID string  `json:"serviceId"`
	Date      string  `json:"date"` // "2025-10-15"
	Time      string  `json:"time"` // "09:00"
	OwnerName string  `json:"ownerName"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
	PetType   string  `json:"petType"`
	Breed     *string `json:"breed,omitempty"`
	WeightKg  *string `json:"weightKg,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// ManualBookingRequest бронирование, внесенное администратором
type ManualBookingRequest struct {
	CreateBookingRequest
	SendNotification *bool `json:"sendNotification,omitempty"` // по умолчанию true
	ForceBooking     bool  `json:"forceBooking,omitempty"`
}

// BookingResponse HTTP response model: {success, bookingId} или {success, error}
type BookingResponse struct {
	Success   bool       `json:"success"`
	BookingID *uuid.UUID `json:"bookingId,omitempty"`
	Status    string     `json:"status,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.Request, error) {
	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, err
	}

	date, err := calendar.ParseDate(r.Date, loc)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(strings.TrimSpace(r.Time))
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceID:      serviceID,
		Date:           date,
		StartTime:      startTime,
		OwnerName:      r.OwnerName,
		Phone:          r.Phone,
		Email:          r.Email,
		PetType:        domain.PetType(r.PetType),
		PetBreed:       r.Breed,
		PetWeightClass: r.WeightKg,
		Notes:          r.Notes,
	}, nil
}

// ToUseCaseRequest добавляет параметры ручного бронирования
func (r *ManualBookingRequest) ToUseCaseRequest(loc *time.Location, adminID string) (*createBooking.Request, error) {
	req, err := r.CreateBookingRequest.ToUseCaseRequest(loc)
	if err != nil {
		return nil, err
	}

	sendNotification := true
	if r.SendNotification != nil {
		sendNotification = *r.SendNotification
	}
	req.Manual = &createBooking.ManualOptions{
		AdminID:          adminID,
		SendNotification: sendNotification,
		ForceBooking:     r.ForceBooking,
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		Success:   true,
		BookingID: ptr.Ptr(resp.Booking.ID),
		Status:    string(resp.Booking.Status),
	}
}
