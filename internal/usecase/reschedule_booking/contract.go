package reschedule_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Reschedule(ctx context.Context, id uuid.UUID, startAt, endAt time.Time) (*domain.Booking, error)
	CreateReschedule(ctx context.Context, rec *domain.BookingReschedule) error
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
type OutboxRepository interface {
	Enqueue(ctx context.Context, entries ...*domain.OutboxEntry) error
}

// AuditRepository интерфейс журнала действий администратора
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLogEntry) error
}

// NotificationPlanner интерфейс планировщика уведомлений
type NotificationPlanner interface {
	ForReschedule(oldStart time.Time, b *domain.Booking, svc *domain.Service, c *domain.Customer, now time.Time) []*domain.OutboxEntry
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
