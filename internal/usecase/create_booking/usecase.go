package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-GroomingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
	"github.com/m04kA/SMC-GroomingService/pkg/phone"
)

// Исходы попытки бронирования для метрик
const (
	outcomeCreated  = "created"
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// UseCase use case для создания бронирования
// Окончательную проверку пересечений выполняет ограничение исключения в хранилище
type UseCase struct {
	serviceRepo  ServiceRepository
	customerRepo CustomerRepository
	bookingRepo  BookingRepository
	outboxRepo   OutboxRepository
	auditRepo    AuditRepository
	slots        SlotsProvider
	planner      NotificationPlanner
	txManager    TransactionManager
	metrics      Metrics
	settings     domain.BusinessSettings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	customerRepo CustomerRepository,
	bookingRepo BookingRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	slots SlotsProvider,
	planner NotificationPlanner,
	txManager TransactionManager,
	metrics Metrics,
	settings domain.BusinessSettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		bookingRepo:  bookingRepo,
		outboxRepo:   outboxRepo,
		auditRepo:    auditRepo,
		slots:        slots,
		planner:      planner,
		txManager:    txManager,
		metrics:      metrics,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	source := req.source()
	resp, err := uc.execute(ctx, req)
	if uc.metrics != nil {
		uc.metrics.BookingAttempt(string(source), outcomeOf(err))
	}

	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Нормализация и валидация входных данных
	normalizeRequest(req)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	loc := uc.settings.Location
	date := calendar.StartOfDay(req.Date, loc)

	uc.logger.Info("CreateBooking: source=%s, service=%s, date=%s, time=%s",
		req.source(), req.ServiceID, date.Format(domain.DateFormat), req.StartTime)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем горизонт бронирования
	if err := validateDate(date, now, loc, uc.settings.MaxBookingDaysAhead); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем услугу
	service, err := uc.serviceRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateBooking: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 5. Рекомендательная проверка по расчету слотов
	forced := req.Manual != nil && req.Manual.ForceBooking
	if !forced {
		if err := uc.checkSlotOffered(ctx, date, req); err != nil {
			return nil, err
		}
	}
	// TODO: forceBooking пропускает только проверку слотов, ограничение bookings_no_overlap
	// по-прежнему отклоняет пересечение; нужно решение продукта, должен ли администратор его обходить

	startAt := req.StartTime.On(date, loc)
	endAt := calendar.AddMinutes(startAt, service.TotalSpan())

	status := domain.StatusPending
	if req.Manual != nil || uc.settings.AutoConfirm {
		status = domain.StatusConfirmed
	}

	booking := &domain.Booking{
		ID:             uuid.New(),
		ServiceID:      service.ID,
		ResourceID:     uc.settings.ResourceID,
		StartAt:        startAt,
		EndAt:          endAt,
		Status:         status,
		Source:         req.source(),
		PetType:        req.PetType,
		PetBreed:       req.PetBreed,
		PetWeightClass: req.PetWeightClass,
		Notes:          req.Notes,
	}

	var response *Response

	// 6. Клиент, бронирование и уведомления записываются одной транзакцией
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 6.1. Находим или создаем клиента
		customer, err := uc.upsertCustomer(txCtx, req)
		if err != nil {
			return err
		}
		booking.CustomerID = customer.ID

		// 6.2. Вставка бронирования; пересечение отклоняет хранилище
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateBooking: slot %s %s is taken", date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 6.3. Ставим уведомления в очередь
		var entries []*domain.OutboxEntry
		if req.Manual == nil || req.Manual.SendNotification {
			entries = uc.planner.ForCreated(created, service, customer, now)
		}
		if err := uc.outboxRepo.Enqueue(txCtx, entries...); err != nil {
			uc.logger.Error("CreateBooking: failed to enqueue notifications for booking id=%s: %v", created.ID, err)
			return fmt.Errorf("%w: failed to enqueue notifications: %v", ErrInternal, err)
		}

		// 6.4. Ручное бронирование фиксируется в журнале
		if req.Manual != nil {
			entry := domain.NewAuditLogEntry(req.Manual.AdminID, domain.AuditBookingCreated, domain.TableBookings, created.ID.String(),
				map[string]interface{}{
					"start_at":          created.StartAt,
					"end_at":            created.EndAt,
					"service_id":        created.ServiceID.String(),
					"customer_id":       customer.ID.String(),
					"force_booking":     req.Manual.ForceBooking,
					"send_notification": req.Manual.SendNotification,
				})
			if err := uc.auditRepo.Create(txCtx, entry); err != nil {
				uc.logger.Error("CreateBooking: failed to write audit for booking id=%s: %v", created.ID, err)
				return fmt.Errorf("%w: failed to write audit log: %v", ErrInternal, err)
			}
		}

		response = &Response{
			Booking:             created,
			Customer:            customer,
			NotificationsQueued: len(entries),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, status=%s, notifications=%d",
		response.Booking.ID, response.Booking.Status, response.NotificationsQueued)

	return response, nil
}

// checkSlotOffered проверяет, что время начала есть среди доступных слотов
func (uc *UseCase) checkSlotOffered(ctx context.Context, date time.Time, req *Request) error {
	slots, err := uc.slots.Execute(ctx, &get_available_slots.Request{Date: date, ServiceID: req.ServiceID})
	if err != nil {
		if errors.Is(err, get_available_slots.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to compute slots: %v", err)
		return fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	if !slots.Contains(req.StartTime.String()) {
		uc.logger.Warn("CreateBooking: %s %s is not among available slots", date.Format(domain.DateFormat), req.StartTime)
		return ErrSlotNotAvailable
	}

	return nil
}

// upsertCustomer ищет клиента сначала по нормализованному телефону, затем по исходному;
// найденному обновляет контакты, иначе создает нового
func (uc *UseCase) upsertCustomer(ctx context.Context, req *Request) (*domain.Customer, error) {
	normalized := phone.Normalize(req.Phone)

	existing, err := uc.customerRepo.FindByNormalizedPhone(ctx, normalized)
	if errors.Is(err, customerRepo.ErrCustomerNotFound) {
		existing, err = uc.customerRepo.FindByPhone(ctx, req.Phone)
	}

	switch {
	case err == nil:
		updated, err := uc.customerRepo.UpdateContact(ctx, existing.ID, domain.ContactDetails{
			Name:            req.OwnerName,
			Phone:           req.Phone,
			PhoneNormalized: normalized,
			Email:           req.Email,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to update customer id=%s: %v", existing.ID, err)
			return nil, fmt.Errorf("%w: failed to update customer: %v", ErrInternal, err)
		}
		return updated, nil

	case errors.Is(err, customerRepo.ErrCustomerNotFound):
		created, err := uc.customerRepo.Create(ctx, &domain.Customer{
			ID:              uuid.New(),
			Name:            req.OwnerName,
			Phone:           req.Phone,
			PhoneNormalized: normalized,
			Email:           req.Email,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create customer: %v", err)
			return nil, fmt.Errorf("%w: failed to create customer: %v", ErrInternal, err)
		}
		uc.logger.Info("CreateBooking: created customer id=%s", created.ID)
		return created, nil

	default:
		uc.logger.Error("CreateBooking: failed to find customer: %v", err)
		return nil, fmt.Errorf("%w: failed to find customer: %v", ErrInternal, err)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeCreated
	case errors.Is(err, ErrSlotNotAvailable):
		return outcomeConflict
	case errors.Is(err, ErrInternal):
		return outcomeError
	default:
		return outcomeRejected
	}
}
