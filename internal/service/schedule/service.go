package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-GroomingService/internal/service/schedule/models"
)

// Service сервис администрирования расписания
// Каждое изменение пишется в журнал в той же транзакции
type Service struct {
	scheduleRepo ScheduleRepository
	auditRepo    AuditRepository
	txManager    TransactionManager
	resourceID   uuid.UUID
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	settings domain.BusinessSettings,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		resourceID:   settings.ResourceID,
		logger:       logger,
	}
}

// UpsertWeekly создает или заменяет рабочие часы дня недели
// Перерывы должны лежать строго внутри рабочего окна
func (s *Service) UpsertWeekly(ctx context.Context, req *models.UpsertWeeklyRequest) (*models.WeeklyResponse, error) {
	if req == nil || req.AdminID == "" {
		return nil, fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}

	s.logger.Info("UpsertWeekly: day=%d, %s-%s, breaks=%d by admin=%s",
		req.DayOfWeek, req.StartTime, req.EndTime, len(req.Breaks), req.AdminID)

	// 1. Валидируем окно и перерывы
	weekly := req.ToDomainWeekly(s.resourceID)
	if err := weekly.Validate(); err != nil {
		s.logger.Warn("UpsertWeekly: validation failed for day=%d: %v", req.DayOfWeek, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Сохраняем вместе с записью журнала
	var saved *domain.WeeklySchedule
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		w, err := s.scheduleRepo.UpsertWeekly(ctx, weekly)
		if err != nil {
			return err
		}
		saved = w

		return s.auditRepo.Create(ctx, domain.NewAuditLogEntry(req.AdminID, domain.AuditScheduleUpserted,
			domain.TableSchedules, w.ID.String(), map[string]interface{}{
				"day_of_week": int(w.DayOfWeek),
				"start_time":  w.StartTime.String(),
				"end_time":    w.EndTime.String(),
				"breaks":      len(w.Breaks),
			}))
	})
	if err != nil {
		s.logger.Error("UpsertWeekly: repository error for day=%d: %v", req.DayOfWeek, err)
		return nil, fmt.Errorf("%w: UpsertWeekly - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertWeekly: successfully saved day=%d", req.DayOfWeek)
	return models.FromDomainWeekly(saved), nil
}

// UpsertException создает или заменяет исключение для даты
func (s *Service) UpsertException(ctx context.Context, req *models.UpsertExceptionRequest) (*models.ExceptionResponse, error) {
	if req == nil || req.AdminID == "" {
		return nil, fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	date := req.Date.Format(domain.DateFormat)
	s.logger.Info("UpsertException: date=%s, closed=%v by admin=%s", date, req.IsClosed, req.AdminID)

	exception := req.ToDomainException()
	if err := exception.Validate(); err != nil {
		s.logger.Warn("UpsertException: validation failed for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var saved *domain.ScheduleException
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		e, err := s.scheduleRepo.UpsertException(ctx, exception)
		if err != nil {
			return err
		}
		saved = e

		payload := map[string]interface{}{"date": date, "is_closed": e.IsClosed}
		if e.HasHours() {
			payload["start_time"] = e.StartTime.String()
			payload["end_time"] = e.EndTime.String()
		}
		return s.auditRepo.Create(ctx, domain.NewAuditLogEntry(req.AdminID, domain.AuditExceptionUpserted,
			domain.TableScheduleExceptions, e.ID.String(), payload))
	})
	if err != nil {
		s.logger.Error("UpsertException: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: UpsertException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertException: successfully saved date=%s", date)
	return models.FromDomainException(saved), nil
}

// DeleteException удаляет исключение, дата возвращается к недельному расписанию
func (s *Service) DeleteException(ctx context.Context, adminID string, date time.Time) error {
	if adminID == "" {
		return fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}

	day := date.Format(domain.DateFormat)
	s.logger.Info("DeleteException: date=%s by admin=%s", day, adminID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.scheduleRepo.DeleteException(ctx, date); err != nil {
			return err
		}
		return s.auditRepo.Create(ctx, domain.NewAuditLogEntry(adminID, domain.AuditExceptionDeleted,
			domain.TableScheduleExceptions, day, map[string]interface{}{"date": day}))
	})
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
			s.logger.Warn("DeleteException: no exception for date=%s", day)
			return ErrExceptionNotFound
		}
		s.logger.Error("DeleteException: repository error for date=%s: %v", day, err)
		return fmt.Errorf("%w: DeleteException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteException: successfully deleted date=%s", day)
	return nil
}

// CreateBlocked блокирует интервал времени
// Уже существующие записи в интервале не отменяются
func (s *Service) CreateBlocked(ctx context.Context, req *models.CreateBlockedRequest) (*models.BlockedResponse, error) {
	if req == nil || req.AdminID == "" {
		return nil, fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}
	if req.StartAt.IsZero() || !req.EndAt.After(req.StartAt) {
		return nil, fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	s.logger.Info("CreateBlocked: %s - %s by admin=%s", req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339), req.AdminID)

	blocked := &domain.BlockedTime{
		ID:         uuid.New(),
		ResourceID: s.resourceID,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		Reason:     req.Reason,
	}

	var saved *domain.BlockedTime
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		b, err := s.scheduleRepo.CreateBlocked(ctx, blocked)
		if err != nil {
			return err
		}
		saved = b

		return s.auditRepo.Create(ctx, domain.NewAuditLogEntry(req.AdminID, domain.AuditBlockedCreated,
			domain.TableBlockedTimes, b.ID.String(), map[string]interface{}{
				"start_at": b.StartAt.Format(time.RFC3339),
				"end_at":   b.EndAt.Format(time.RFC3339),
				"reason":   b.Reason,
			}))
	})
	if err != nil {
		s.logger.Error("CreateBlocked: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlocked - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlocked: successfully created id=%s", saved.ID)
	return models.FromDomainBlocked(saved), nil
}

// DeleteBlocked снимает блокировку интервала
func (s *Service) DeleteBlocked(ctx context.Context, adminID string, id uuid.UUID) error {
	if adminID == "" {
		return fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}

	s.logger.Info("DeleteBlocked: id=%s by admin=%s", id, adminID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.scheduleRepo.DeleteBlocked(ctx, id); err != nil {
			return err
		}
		return s.auditRepo.Create(ctx, domain.NewAuditLogEntry(adminID, domain.AuditBlockedDeleted,
			domain.TableBlockedTimes, id.String(), nil))
	})
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedTimeNotFound) {
			s.logger.Warn("DeleteBlocked: id=%s not found", id)
			return ErrBlockedTimeNotFound
		}
		s.logger.Error("DeleteBlocked: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteBlocked - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlocked: successfully deleted id=%s", id)
	return nil
}
