package drain_outbox

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/templates"
)

// OutboxRepository интерфейс очереди уведомлений
type OutboxRepository interface {
	ListDue(ctx context.Context, now time.Time, maxAttempts, limit int) ([]*domain.OutboxEntry, error)
	Claim(ctx context.Context, id uuid.UUID, now time.Time) (*domain.OutboxEntry, bool, error)
	MarkSent(ctx context.Context, id uuid.UUID, providerMessageID string, now time.Time) error
	MarkRetry(ctx context.Context, id uuid.UUID, runAt time.Time, lastError string, now time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string, now time.Time) error
	ReclaimStale(ctx context.Context, staleBefore time.Time, maxAttempts int, now time.Time) (domain.ReclaimResult, error)
}

// Renderer интерфейс рендеринга шаблонов
type Renderer interface {
	Render(channel domain.Channel, id domain.TemplateID, payload map[string]string) templates.Message
}

// Sender адаптер провайдера доставки
type Sender interface {
	Send(ctx context.Context, to string, msg templates.Message) (string, error)
}

// Metrics интерфейс счетчиков очереди
type Metrics interface {
	OutboxDispatch(channel, outcome string)
	OutboxReclaim(result string, n int)
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
