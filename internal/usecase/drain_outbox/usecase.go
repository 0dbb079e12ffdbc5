package drain_outbox

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// Исходы отправки для метрик
const (
	outcomeSent    = "sent"
	outcomeRetry   = "retry"
	outcomeFailed  = "failed"
	outcomeSkipped = "skipped"
)

// UseCase use case для доставки уведомлений из очереди
// Безопасен при параллельных вызовах: запись обрабатывает только тот, кто её захватил
type UseCase struct {
	outboxRepo   OutboxRepository
	renderer     Renderer
	senders      map[domain.Channel]Sender
	metrics      Metrics
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	outboxRepo OutboxRepository,
	renderer Renderer,
	senders map[domain.Channel]Sender,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.BatchSize <= 0 {
		settings.BatchSize = domain.DefaultOutboxBatchSize
	}
	if settings.MaxAttempts <= 0 {
		settings.MaxAttempts = domain.DefaultOutboxMaxAttempts
	}
	return &UseCase{
		outboxRepo:   outboxRepo,
		renderer:     renderer,
		senders:      senders,
		metrics:      metrics,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет один проход по очереди
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	batch := uc.settings.BatchSize
	if req != nil && req.BatchSize > 0 {
		batch = req.BatchSize
	}

	resp := &Response{}

	// 1. Возвращаем в очередь зависшие processing записи
	if uc.settings.StaleAfter > 0 {
		resp.Reclaimed = uc.Reclaim(ctx)
	}

	// 2. Выбираем записи, которым пора отправляться
	now := uc.timeProvider.Now()
	due, err := uc.outboxRepo.ListDue(ctx, now, uc.settings.MaxAttempts, batch)
	if err != nil {
		uc.logger.Error("DrainOutbox: failed to list due entries: %v", err)
		return nil, fmt.Errorf("%w: failed to list due entries: %v", ErrInternal, err)
	}

	if len(due) == 0 {
		return resp, nil
	}

	uc.logger.Info("DrainOutbox: %d entries due", len(due))

	// 3. Каждую запись обрабатываем независимо
	for _, entry := range due {
		if ctx.Err() != nil {
			uc.logger.Warn("DrainOutbox: stopped early: %v", ctx.Err())
			break
		}
		uc.process(ctx, entry, resp)
	}

	uc.logger.Info("DrainOutbox: sent=%d, failed=%d, dead=%d, skipped=%d",
		resp.Sent, resp.Failed, resp.Dead, resp.Skipped)

	return resp, nil
}

// Reclaim возвращает processing записи старше StaleAfter в pending, либо в failed при исчерпанных попытках
func (uc *UseCase) Reclaim(ctx context.Context) domain.ReclaimResult {
	now := uc.timeProvider.Now()

	result, err := uc.outboxRepo.ReclaimStale(ctx, now.Add(-uc.settings.StaleAfter), uc.settings.MaxAttempts, now)
	if err != nil {
		uc.logger.Error("DrainOutbox: failed to reclaim stale entries: %v", err)
		return domain.ReclaimResult{}
	}

	if result.Requeued > 0 || result.Failed > 0 {
		uc.logger.Warn("DrainOutbox: reclaimed stale entries: requeued=%d, failed=%d", result.Requeued, result.Failed)
	}
	if uc.metrics != nil {
		uc.metrics.OutboxReclaim("requeued", result.Requeued)
		uc.metrics.OutboxReclaim("failed", result.Failed)
	}

	return result
}

func (uc *UseCase) process(ctx context.Context, entry *domain.OutboxEntry, resp *Response) {
	// 3.1. Захват: pending -> processing, только один обработчик получает запись
	claimed, ok, err := uc.outboxRepo.Claim(ctx, entry.ID, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Error("DrainOutbox: failed to claim entry id=%s: %v", entry.ID, err)
		return
	}
	if !ok {
		resp.Skipped++
		uc.observe(entry.Channel, outcomeSkipped)
		return
	}

	// 3.2. Рендер и отправка
	providerID, sendErr := uc.send(ctx, claimed)
	now := uc.timeProvider.Now()

	// Исход отправки записывается даже после отмены ctx, иначе запись вернется в очередь и уйдет повторно
	markCtx := context.WithoutCancel(ctx)

	if sendErr == nil {
		if err := uc.outboxRepo.MarkSent(markCtx, claimed.ID, providerID, now); err != nil {
			uc.logger.Error("DrainOutbox: entry id=%s sent but not marked: %v", claimed.ID, err)
		}
		resp.Sent++
		uc.observe(claimed.Channel, outcomeSent)
		return
	}

	resp.Failed++

	// 3.3. Попытки исчерпаны - запись становится failed, run_at не меняется
	if claimed.Attempts >= uc.settings.MaxAttempts {
		uc.logger.Error("DrainOutbox: entry id=%s failed permanently after %d attempts: %v",
			claimed.ID, claimed.Attempts, sendErr)
		if err := uc.outboxRepo.MarkFailed(markCtx, claimed.ID, sendErr.Error(), now); err != nil {
			uc.logger.Error("DrainOutbox: failed to mark entry id=%s failed: %v", claimed.ID, err)
		}
		resp.Dead++
		uc.observe(claimed.Channel, outcomeFailed)
		return
	}

	// 3.4. Иначе откладываем на 2^attempts минут
	runAt := now.Add(domain.BackoffDelay(claimed.Attempts))
	uc.logger.Warn("DrainOutbox: entry id=%s attempt %d failed, retry at %s: %v",
		claimed.ID, claimed.Attempts, runAt.Format("15:04:05"), sendErr)
	if err := uc.outboxRepo.MarkRetry(markCtx, claimed.ID, runAt, sendErr.Error(), now); err != nil {
		uc.logger.Error("DrainOutbox: failed to reschedule entry id=%s: %v", claimed.ID, err)
	}
	uc.observe(claimed.Channel, outcomeRetry)
}

// send вызывает провайдера; паника адаптера превращается в ошибку записи
func (uc *UseCase) send(ctx context.Context, entry *domain.OutboxEntry) (providerID string, err error) {
	sender, ok := uc.senders[entry.Channel]
	if !ok || sender == nil {
		return "", fmt.Errorf("%w: %s", errNoSender, entry.Channel)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sender panic: %v", r)
		}
	}()

	msg := uc.renderer.Render(entry.Channel, entry.Template, entry.Payload)
	return sender.Send(ctx, entry.Recipient, msg)
}

func (uc *UseCase) observe(channel domain.Channel, outcome string) {
	if uc.metrics != nil {
		uc.metrics.OutboxDispatch(string(channel), outcome)
	}
}
