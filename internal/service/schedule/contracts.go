package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	UpsertWeekly(ctx context.Context, w *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
	UpsertException(ctx context.Context, e *domain.ScheduleException) (*domain.ScheduleException, error)
	DeleteException(ctx context.Context, date time.Time) error
	CreateBlocked(ctx context.Context, b *domain.BlockedTime) (*domain.BlockedTime, error)
	DeleteBlocked(ctx context.Context, id uuid.UUID) error
}

// AuditRepository интерфейс журнала действий администратора
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLogEntry) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
