package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/booking"
)

// UseCase use case для смены статуса бронирования администратором
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	customerRepo CustomerRepository
	outboxRepo   OutboxRepository
	auditRepo    AuditRepository
	planner      NotificationPlanner
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	customerRepo CustomerRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	planner NotificationPlanner,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		outboxRepo:   outboxRepo,
		auditRepo:    auditRepo,
		planner:      planner,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case смены статуса
// Уведомление клиенту уходит только при переходе в confirmed или canceled
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("UpdateBookingStatus: booking=%s, status=%s, admin=%s", req.BookingID, req.Status, req.AdminID)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var response *Response

	// 3. Смена статуса, уведомления и аудит одной транзакцией
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронирование
		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBookingStatus: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3.2. Проверяем переход по таблице жизненного цикла
		if !current.Status.CanTransitionTo(req.Status) {
			uc.logger.Warn("UpdateBookingStatus: transition %s -> %s is not allowed for booking id=%s",
				current.Status, req.Status, current.ID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, req.Status)
		}

		// 3.3. Обновляем статус только если он не изменился с момента чтения
		updated, err := uc.bookingRepo.UpdateStatus(txCtx, current.ID, current.Status, req.Status)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				uc.logger.Warn("UpdateBookingStatus: booking id=%s changed concurrently", current.ID)
				return ErrStatusChanged
			}
			uc.logger.Error("UpdateBookingStatus: failed to update booking id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		// 3.4. Уведомления клиенту
		queued, err := uc.enqueueNotifications(txCtx, updated, now)
		if err != nil {
			return err
		}

		// 3.5. Аудит
		entry := domain.NewAuditLogEntry(req.AdminID, domain.AuditBookingStatus, domain.TableBookings, current.ID.String(),
			map[string]interface{}{
				"from": string(current.Status),
				"to":   string(updated.Status),
			})
		if err := uc.auditRepo.Create(txCtx, entry); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to write audit: %v", err)
			return fmt.Errorf("%w: failed to write audit log: %v", ErrInternal, err)
		}

		response = &Response{
			Booking:             updated,
			PreviousStatus:      current.Status,
			NotificationsQueued: queued,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBookingStatus: booking id=%s %s -> %s, notifications=%d",
		response.Booking.ID, response.PreviousStatus, response.Booking.Status, response.NotificationsQueued)

	return response, nil
}

// enqueueNotifications ставит уведомление о новом статусе, если он объявляется клиенту
func (uc *UseCase) enqueueNotifications(ctx context.Context, b *domain.Booking, now time.Time) (int, error) {
	if b.Status != domain.StatusConfirmed && b.Status != domain.StatusCanceled {
		return 0, nil
	}

	service, err := uc.serviceRepo.GetServiceByID(ctx, b.ServiceID)
	if err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to get service id=%s: %v", b.ServiceID, err)
		return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	customer, err := uc.customerRepo.GetByID(ctx, b.CustomerID)
	if err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to get customer id=%s: %v", b.CustomerID, err)
		return 0, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	entries := uc.planner.ForStatusChange(b, service, customer, now)
	if err := uc.outboxRepo.Enqueue(ctx, entries...); err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to enqueue notifications: %v", err)
		return 0, fmt.Errorf("%w: failed to enqueue notifications: %v", ErrInternal, err)
	}

	return len(entries), nil
}
