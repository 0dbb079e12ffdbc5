package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID uuid.UUID        // ID услуги
	Date      time.Time        // Дата (полночь в часовом поясе бизнеса)
	StartTime types.TimeString // Время начала в формате HH:MM

	OwnerName string  // Имя владельца
	Phone     string  // Телефон в том виде, как введен
	Email     *string // Email (опционально)

	PetType        domain.PetType // dog, cat или other; пустое значение означает dog
	PetBreed       *string
	PetWeightClass *string
	Notes          *string

	Manual *ManualOptions // nil для бронирований с сайта
}

// ManualOptions параметры бронирования, внесенного администратором по телефону
type ManualOptions struct {
	AdminID          string
	SendNotification bool // false - уведомления не ставятся в очередь
	ForceBooking     bool // пропускает рекомендательную проверку слотов
}

// Response модель ответа после создания бронирования
type Response struct {
	Booking             *domain.Booking
	Customer            *domain.Customer
	NotificationsQueued int
}

// source источник бронирования для записи и метрик
func (r *Request) source() domain.BookingSource {
	if r.Manual != nil {
		return domain.SourcePhone
	}
	return domain.SourceWebsite
}
