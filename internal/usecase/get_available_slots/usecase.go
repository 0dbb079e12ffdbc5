package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
)

// UseCase use case для получения доступных слотов для бронирования
// Результат носит рекомендательный характер: окончательно конфликт решает ограничение в хранилище
type UseCase struct {
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	settings     domain.BusinessSettings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	settings domain.BusinessSettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	loc := uc.settings.Location
	date := calendar.StartOfDay(req.Date, loc)

	uc.logger.Info("GetAvailableSlots: service=%s, date=%s", req.ServiceID, date.Format(domain.DateFormat))

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	response := &Response{
		Date:      date,
		ServiceID: service.ID,
		TotalSpan: service.TotalSpan(),
		Slots:     []domain.AvailableSlot{},
	}

	// 4. Определяем рабочее окно: исключение на дату важнее недельного расписания
	exception, err := uc.scheduleRepo.GetException(ctx, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get exception: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule exception: %v", ErrInternal, err)
	}
	if exception != nil && exception.IsClosed {
		uc.logger.Info("GetAvailableSlots: closed by exception on %s", date.Format(domain.DateFormat))
		return response, nil
	}

	weekly, err := uc.scheduleRepo.GetWeekly(ctx, uc.settings.ResourceID, date.Weekday())
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get weekly schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get weekly schedule: %v", ErrInternal, err)
	}

	window, open := resolveWindow(weekly, exception)
	if !open {
		uc.logger.Info("GetAvailableSlots: no working hours on %s", date.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Загружаем занятые интервалы дня: активные бронирования и блокировки
	dayStart, dayEnd := calendar.DayBounds(date, loc)

	bookings, err := uc.bookingRepo.ListActiveInRange(ctx, uc.settings.ResourceID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocked, err := uc.scheduleRepo.ListBlockedInRange(ctx, uc.settings.ResourceID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked times: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked times: %v", ErrInternal, err)
	}

	busy := make([]interval, 0, len(bookings)+len(blocked))
	for _, b := range bookings {
		busy = append(busy, interval{start: b.StartAt, end: b.EndAt})
	}
	for _, b := range blocked {
		busy = append(busy, interval{start: b.StartAt, end: b.EndAt})
	}

	// 6. Генерируем слоты
	response.Slots = generateSlots(date, loc, window, service.TotalSpan(), busy, now)

	uc.logger.Info("GetAvailableSlots: found %d available slots for %s (window %s-%s, span %d min, %d busy intervals)",
		len(response.Slots), date.Format(domain.DateFormat), window.Start, window.End, service.TotalSpan(), len(busy))

	return response, nil
}
