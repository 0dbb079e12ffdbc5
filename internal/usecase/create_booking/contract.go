package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/usecase/get_available_slots"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	FindByNormalizedPhone(ctx context.Context, phone string) (*domain.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	UpdateContact(ctx context.Context, id uuid.UUID, contact domain.ContactDetails) (*domain.Customer, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// OutboxRepository интерфейс очереди уведомлений
type OutboxRepository interface {
	Enqueue(ctx context.Context, entries ...*domain.OutboxEntry) error
}

// AuditRepository интерфейс журнала действий администратора
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLogEntry) error
}

// SlotsProvider интерфейс расчета доступных слотов (рекомендательная проверка)
type SlotsProvider interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// NotificationPlanner интерфейс планировщика уведомлений
type NotificationPlanner interface {
	ForCreated(b *domain.Booking, svc *domain.Service, c *domain.Customer, now time.Time) []*domain.OutboxEntry
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс счетчиков бронирований
type Metrics interface {
	BookingAttempt(source, outcome string)
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
