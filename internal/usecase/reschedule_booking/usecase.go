package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
)

// UseCase use case для переноса бронирования на другое время
// Длительность пересчитывается по исходной услуге бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	customerRepo CustomerRepository
	outboxRepo   OutboxRepository
	auditRepo    AuditRepository
	planner      NotificationPlanner
	txManager    TransactionManager
	settings     domain.BusinessSettings
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
	settings domain.BusinessSettings,
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
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	loc := uc.settings.Location
	date := calendar.StartOfDay(req.Date, loc)
	newStart := req.StartTime.On(date, loc)

	uc.logger.Info("RescheduleBooking: booking=%s, new start=%s, admin=%s",
		req.BookingID, newStart.Format(domain.DateFormat+" "+domain.TimeFormat), req.AdminID)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	if newStart.Before(now) {
		uc.logger.Warn("RescheduleBooking: new start %s is in the past", newStart)
		return nil, fmt.Errorf("%w: new start is in the past", ErrInvalidInput)
	}

	var response *Response

	// 3. Перенос, запись истории, уведомление и аудит одной транзакцией
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронирование
		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if !current.IsActive() {
			uc.logger.Warn("RescheduleBooking: booking id=%s has status %s", current.ID, current.Status)
			return ErrBookingNotActive
		}

		// 3.2. Пересчитываем конец по исходной услуге
		service, err := uc.serviceRepo.GetServiceByID(txCtx, current.ServiceID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get service id=%s: %v", current.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		newEnd := calendar.AddMinutes(newStart, service.TotalSpan())

		// 3.3. Переносим; пересечение отклоняет хранилище
		updated, err := uc.bookingRepo.Reschedule(txCtx, current.ID, newStart, newEnd)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotConflict):
				uc.logger.Warn("RescheduleBooking: new interval for booking id=%s is taken", current.ID)
				return ErrSlotNotAvailable
			case errors.Is(err, bookingRepo.ErrBookingNotActive):
				uc.logger.Warn("RescheduleBooking: booking id=%s became inactive", current.ID)
				return ErrBookingNotActive
			}
			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		// 3.4. История переносов
		rec := &domain.BookingReschedule{
			ID:         uuid.New(),
			BookingID:  current.ID,
			OldStartAt: current.StartAt,
			OldEndAt:   current.EndAt,
			NewStartAt: updated.StartAt,
			NewEndAt:   updated.EndAt,
			Actor:      req.AdminID,
		}
		if err := uc.bookingRepo.CreateReschedule(txCtx, rec); err != nil {
			uc.logger.Error("RescheduleBooking: failed to record reschedule for booking id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: failed to record reschedule: %v", ErrInternal, err)
		}

		// 3.5. Уведомление клиента
		customer, err := uc.customerRepo.GetByID(txCtx, current.CustomerID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get customer id=%s: %v", current.CustomerID, err)
			return fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}
		entries := uc.planner.ForReschedule(current.StartAt, updated, service, customer, now)
		if err := uc.outboxRepo.Enqueue(txCtx, entries...); err != nil {
			uc.logger.Error("RescheduleBooking: failed to enqueue notifications: %v", err)
			return fmt.Errorf("%w: failed to enqueue notifications: %v", ErrInternal, err)
		}

		// 3.6. Аудит
		entry := domain.NewAuditLogEntry(req.AdminID, domain.AuditBookingRescheduled, domain.TableBookings, current.ID.String(),
			map[string]interface{}{
				"old_start_at": current.StartAt,
				"old_end_at":   current.EndAt,
				"new_start_at": updated.StartAt,
				"new_end_at":   updated.EndAt,
			})
		if err := uc.auditRepo.Create(txCtx, entry); err != nil {
			uc.logger.Error("RescheduleBooking: failed to write audit: %v", err)
			return fmt.Errorf("%w: failed to write audit log: %v", ErrInternal, err)
		}

		response = &Response{Booking: updated, Reschedule: rec}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully moved booking id=%s to %s",
		response.Booking.ID, response.Booking.StartAt.In(loc).Format(domain.DateFormat+" "+domain.TimeFormat))

	return response, nil
}
