package bookings

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-GroomingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
)

// Service сервис административных операций над записями
type Service struct {
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

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	customerRepo CustomerRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	planner NotificationPlanner,
	txManager TransactionManager,
	settings domain.BusinessSettings,
	logger Logger,
) *Service {
	return &Service{
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

// List получает записи за день с клиентом и услугой
// Опционально фильтрует по статусу
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if req == nil || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	from, to := calendar.DayBounds(req.Date, s.settings.Location)
	filter := domain.BookingsFilter{
		ResourceID: s.settings.ResourceID,
		From:       &from,
		To:         &to,
	}

	if req.Status != nil {
		status := domain.BookingStatus(*req.Status)
		if !status.IsValid() {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	s.logger.Info("List: fetching bookings for date=%s, status=%v", from.Format(domain.DateFormat), filter.Statuses)

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	// Услуги и клиенты повторяются в пределах дня
	services := make(map[uuid.UUID]*domain.Service)
	customers := make(map[uuid.UUID]*domain.Customer)

	resp := &models.BookingListResponse{Bookings: make([]models.BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		view := domain.BookingView{Booking: b}

		if svc, ok := services[b.ServiceID]; ok {
			view.Service = svc
		} else if svc, err := s.serviceRepo.GetServiceByID(ctx, b.ServiceID); err == nil {
			services[b.ServiceID] = svc
			view.Service = svc
		} else {
			s.logger.Warn("List: service id=%s of booking id=%s not loaded: %v", b.ServiceID, b.ID, err)
		}

		if c, ok := customers[b.CustomerID]; ok {
			view.Customer = c
		} else if c, err := s.customerRepo.GetByID(ctx, b.CustomerID); err == nil {
			customers[b.CustomerID] = c
			view.Customer = c
		} else {
			s.logger.Warn("List: customer id=%s of booking id=%s not loaded: %v", b.CustomerID, b.ID, err)
		}

		resp.Bookings = append(resp.Bookings, models.FromDomainBookingView(view, s.settings.Location))
	}
	resp.Total = len(resp.Bookings)

	s.logger.Info("List: successfully fetched %d bookings", resp.Total)
	return resp, nil
}

// ResendNotification повторно ставит в очередь уведомление клиенту
// Напоминания не переотправляются: они уникальны для записи и канала
func (s *Service) ResendNotification(ctx context.Context, bookingID uuid.UUID, req *models.ResendNotificationRequest) (*models.ResendNotificationResponse, error) {
	if req == nil || req.AdminID == "" {
		return nil, fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}

	channel := domain.Channel(req.Channel)
	template := domain.TemplateID(req.Template)
	if !channel.IsValid() {
		return nil, fmt.Errorf("%w: unknown channel %q", ErrInvalidInput, req.Channel)
	}
	if !template.IsValid() || template.IsReminder() {
		return nil, fmt.Errorf("%w: template %q cannot be resent", ErrInvalidInput, req.Template)
	}

	s.logger.Info("ResendNotification: booking id=%s, channel=%s, template=%s by admin=%s",
		bookingID, channel, template, req.AdminID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("ResendNotification: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("ResendNotification: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ResendNotification - repository error: %v", ErrInternal, err)
	}

	svc, err := s.serviceRepo.GetServiceByID(ctx, booking.ServiceID)
	if err != nil {
		s.logger.Error("ResendNotification: failed to load service id=%s: %v", booking.ServiceID, err)
		return nil, fmt.Errorf("%w: ResendNotification - failed to load service: %v", ErrInternal, err)
	}
	customer, err := s.customerRepo.GetByID(ctx, booking.CustomerID)
	if err != nil {
		s.logger.Error("ResendNotification: failed to load customer id=%s: %v", booking.CustomerID, err)
		return nil, fmt.Errorf("%w: ResendNotification - failed to load customer: %v", ErrInternal, err)
	}

	entry := s.planner.ForResend(booking, svc, customer, template, channel, s.timeProvider.Now())
	if entry == nil {
		s.logger.Warn("ResendNotification: customer id=%s has no %s recipient", customer.ID, channel)
		return nil, ErrNoRecipient
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.outboxRepo.Enqueue(ctx, entry); err != nil {
			return err
		}
		return s.auditRepo.Create(ctx, domain.NewAuditLogEntry(req.AdminID, domain.AuditNotificationResent,
			domain.TableOutbox, entry.ID.String(), map[string]interface{}{
				"booking_id": booking.ID.String(),
				"channel":    string(channel),
				"template":   string(template),
			}))
	})
	if err != nil {
		s.logger.Error("ResendNotification: failed to enqueue for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ResendNotification - failed to enqueue: %v", ErrInternal, err)
	}

	s.logger.Info("ResendNotification: queued entry id=%s for booking id=%s", entry.ID, bookingID)
	return &models.ResendNotificationResponse{
		EntryID:   entry.ID,
		Channel:   string(entry.Channel),
		Recipient: entry.Recipient,
		Template:  string(entry.Template),
	}, nil
}

// UpdateCustomerNotes изменяет заметки администратора о клиенте
func (s *Service) UpdateCustomerNotes(ctx context.Context, customerID uuid.UUID, req *models.UpdateNotesRequest) (*models.CustomerResponse, error) {
	if req == nil || req.AdminID == "" {
		return nil, fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	s.logger.Info("UpdateCustomerNotes: customer id=%s by admin=%s", customerID, req.AdminID)

	var updated *domain.Customer
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		c, err := s.customerRepo.UpdateNotes(ctx, customerID, req.Notes)
		if err != nil {
			return err
		}
		updated = c

		return s.auditRepo.Create(ctx, domain.NewAuditLogEntry(req.AdminID, domain.AuditCustomerNotes,
			domain.TableCustomers, customerID.String(), map[string]interface{}{
				"notes": req.Notes,
			}))
	})
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("UpdateCustomerNotes: customer id=%s not found", customerID)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("UpdateCustomerNotes: repository error for customer id=%s: %v", customerID, err)
		return nil, fmt.Errorf("%w: UpdateCustomerNotes - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainCustomer(updated)
	s.logger.Info("UpdateCustomerNotes: successfully updated customer id=%s", customerID)
	return &resp, nil
}

// ListFailedNotifications последние записи очереди, исчерпавшие попытки
func (s *Service) ListFailedNotifications(ctx context.Context, limit int) ([]models.OutboxEntryResponse, error) {
	if limit <= 0 {
		limit = models.DefaultFailedLimit
	}

	entries, err := s.outboxRepo.ListFailed(ctx, limit)
	if err != nil {
		s.logger.Error("ListFailedNotifications: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListFailedNotifications - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOutboxList(entries), nil
}
