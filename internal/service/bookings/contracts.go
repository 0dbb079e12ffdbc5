package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) (*domain.Customer, error)
}

// OutboxRepository интерфейс очереди уведомлений
type OutboxRepository interface {
	Enqueue(ctx context.Context, entries ...*domain.OutboxEntry) error
	ListFailed(ctx context.Context, limit int) ([]*domain.OutboxEntry, error)
}

// AuditRepository интерфейс журнала действий администратора
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLogEntry) error
}

// NotificationPlanner интерфейс планировщика уведомлений
type NotificationPlanner interface {
	ForResend(b *domain.Booking, svc *domain.Service, c *domain.Customer, template domain.TemplateID, channel domain.Channel, now time.Time) *domain.OutboxEntry
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
