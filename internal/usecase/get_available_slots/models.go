package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date      time.Time // Дата (полночь в часовом поясе бизнеса)
	ServiceID uuid.UUID // ID услуги
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time              // Дата
	ServiceID uuid.UUID              // ID услуги
	TotalSpan int                    // Длительность услуги с буфером в минутах
	Slots     []domain.AvailableSlot // Только доступные слоты, по возрастанию времени
}

// Contains true, если время start входит в список доступных слотов
func (r *Response) Contains(start string) bool {
	for _, s := range r.Slots {
		if s.Time.String() == start {
			return true
		}
	}
	return false
}
