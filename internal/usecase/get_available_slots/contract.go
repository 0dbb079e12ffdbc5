package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeekly(ctx context.Context, resourceID uuid.UUID, day time.Weekday) (*domain.WeeklySchedule, error)
	GetException(ctx context.Context, date time.Time) (*domain.ScheduleException, error)
	ListBlockedInRange(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*domain.BlockedTime, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveInRange(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
