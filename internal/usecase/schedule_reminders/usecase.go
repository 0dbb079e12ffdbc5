package schedule_reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/ptr"
)

// UseCase use case постановки напоминаний в очередь
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	customerRepo CustomerRepository
	outboxRepo   OutboxRepository
	planner      NotificationPlanner
	metrics      Metrics
	business     domain.BusinessSettings
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	customerRepo CustomerRepository,
	outboxRepo OutboxRepository,
	planner NotificationPlanner,
	metrics Metrics,
	business domain.BusinessSettings,
	settings Settings,
	logger Logger,
) *UseCase {
	if len(settings.Windows) == 0 {
		settings = DefaultSettings()
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		outboxRepo:   outboxRepo,
		planner:      planner,
		metrics:      metrics,
		business:     business,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute просматривает окна напоминаний и ставит в очередь недостающие сообщения
// Повторный запуск не создает дублей: уникальность держит хранилище
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	resp := &Response{}

	for _, w := range uc.settings.Windows {
		if err := uc.scanWindow(ctx, w, now, resp); err != nil {
			return nil, err
		}
	}

	uc.logger.Info("ScheduleReminders: scanned=%d, queued=%d, duplicates=%d, skipped=%d",
		resp.Scanned, resp.Queued, resp.Duplicates, resp.Skipped)

	return resp, nil
}

func (uc *UseCase) scanWindow(ctx context.Context, w Window, now time.Time, resp *Response) error {
	// 1. Подтвержденные записи с началом в окне
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		ResourceID: uc.business.ResourceID,
		From:       ptr.Ptr(now.Add(w.From)),
		To:         ptr.Ptr(now.Add(w.To)),
		Statuses:   []domain.BookingStatus{domain.StatusConfirmed},
	})
	if err != nil {
		uc.logger.Error("ScheduleReminders: failed to list bookings for template=%s: %v", w.Template, err)
		return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	for _, b := range bookings {
		resp.Scanned++

		// 2. Данные для payload
		svc, err := uc.serviceRepo.GetServiceByID(ctx, b.ServiceID)
		if err != nil {
			uc.logger.Warn("ScheduleReminders: booking id=%s: service lookup failed: %v", b.ID, err)
			resp.Skipped++
			continue
		}
		customer, err := uc.customerRepo.GetByID(ctx, b.CustomerID)
		if err != nil {
			uc.logger.Warn("ScheduleReminders: booking id=%s: customer lookup failed: %v", b.ID, err)
			resp.Skipped++
			continue
		}

		// 3. По одной строке на канал, если такой еще нет
		for _, channel := range w.Channels {
			entry := uc.planner.ForReminder(b, svc, customer, w.Template, channel, now)
			if entry == nil {
				continue
			}

			inserted, err := uc.outboxRepo.EnqueueUnique(ctx, entry)
			if err != nil {
				uc.logger.Error("ScheduleReminders: failed to enqueue %s/%s for booking id=%s: %v",
					w.Template, channel, b.ID, err)
				return fmt.Errorf("%w: failed to enqueue reminder: %v", ErrInternal, err)
			}
			if !inserted {
				resp.Duplicates++
				continue
			}

			resp.Queued++
			if uc.metrics != nil {
				uc.metrics.ReminderEnqueued(string(w.Template))
			}
		}
	}

	return nil
}
