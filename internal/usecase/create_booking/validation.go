package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
)

var validate = validator.New()

// normalizeRequest обрезает пробелы и подставляет значения по умолчанию
func normalizeRequest(req *Request) {
	req.OwnerName = strings.TrimSpace(req.OwnerName)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			req.Email = nil
		} else {
			req.Email = &email
		}
	}
	if req.PetType == "" {
		req.PetType = domain.PetDog
	}
	req.PetBreed = trimOptional(req.PetBreed)
	req.PetWeightClass = trimOptional(req.PetWeightClass)
	req.Notes = trimOptional(req.Notes)
}

// validateRequest проверяет входные данные до любого обращения к хранилищу
func validateRequest(req *Request) error {
	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: service id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}

	nameLen := utf8.RuneCountInString(req.OwnerName)
	if nameLen < domain.MinCustomerNameLength || nameLen > domain.MaxNameLength {
		return fmt.Errorf("%w: owner name must be %d-%d characters", ErrInvalidInput, domain.MinCustomerNameLength, domain.MaxNameLength)
	}
	if utf8.RuneCountInString(req.Phone) < domain.MinPhoneLength {
		return fmt.Errorf("%w: phone must be at least %d characters", ErrInvalidInput, domain.MinPhoneLength)
	}
	if req.Email != nil {
		if err := validate.Var(*req.Email, "email"); err != nil {
			return fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
	}

	if !req.PetType.IsValid() {
		return fmt.Errorf("%w: unknown pet type %q", ErrInvalidInput, req.PetType)
	}
	if req.PetBreed != nil && utf8.RuneCountInString(*req.PetBreed) > domain.MaxBreedLength {
		return fmt.Errorf("%w: pet breed is too long", ErrInvalidInput)
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше maxDaysAhead дней
func validateDate(date, now time.Time, loc *time.Location, maxDaysAhead int) error {
	day := calendar.StartOfDay(date, loc)
	today := calendar.StartOfDay(now, loc)

	if day.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, day.Format(domain.DateFormat))
	}

	horizon := today.AddDate(0, 0, maxDaysAhead)
	if day.After(horizon) {
		return fmt.Errorf("%w: date %s is more than %d days ahead", ErrInvalidDate, day.Format(domain.DateFormat), maxDaysAhead)
	}

	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
