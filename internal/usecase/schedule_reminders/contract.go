package schedule_reminders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
}

// OutboxRepository интерфейс очереди уведомлений
// EnqueueUnique возвращает false, если напоминание по этой записи уже стоит в очереди
type OutboxRepository interface {
	EnqueueUnique(ctx context.Context, entry *domain.OutboxEntry) (bool, error)
}

// NotificationPlanner интерфейс планировщика уведомлений
type NotificationPlanner interface {
	ForReminder(b *domain.Booking, svc *domain.Service, c *domain.Customer, template domain.TemplateID, channel domain.Channel, now time.Time) *domain.OutboxEntry
}

// Metrics интерфейс счетчиков напоминаний
type Metrics interface {
	ReminderEnqueued(template string)
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
