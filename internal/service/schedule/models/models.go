package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

// Request модели

// UpsertWeeklyRequest рабочие часы одного дня недели
type UpsertWeeklyRequest struct {
	AdminID   string           `json:"-"`
	DayOfWeek time.Weekday     `json:"-"` // из пути, 0 = воскресенье
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	Breaks    []domain.Break   `json:"breaks"`
}

// UpsertExceptionRequest исключение для одной даты
type UpsertExceptionRequest struct {
	AdminID   string            `json:"-"`
	Date      time.Time         `json:"-"` // из пути
	IsClosed  bool              `json:"isClosed"`
	StartTime *types.TimeString `json:"startTime,omitempty"`
	EndTime   *types.TimeString `json:"endTime,omitempty"`
	Notes     *string           `json:"notes,omitempty"`
}

// CreateBlockedRequest блокировка интервала
type CreateBlockedRequest struct {
	AdminID string    `json:"-"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Reason  string    `json:"reason"`
}

// ToDomainWeekly конвертирует запрос в расписание ресурса
func (r *UpsertWeeklyRequest) ToDomainWeekly(resourceID uuid.UUID) *domain.WeeklySchedule {
	breaks := r.Breaks
	if breaks == nil {
		breaks = []domain.Break{}
	}
	return &domain.WeeklySchedule{
		ID:         uuid.New(),
		ResourceID: resourceID,
		DayOfWeek:  r.DayOfWeek,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Breaks:     breaks,
	}
}

// ToDomainException конвертирует запрос в исключение
func (r *UpsertExceptionRequest) ToDomainException() *domain.ScheduleException {
	e := &domain.ScheduleException{
		ID:       uuid.New(),
		Date:     r.Date,
		IsClosed: r.IsClosed,
		Notes:    r.Notes,
	}
	if !r.IsClosed {
		e.StartTime = r.StartTime
		e.EndTime = r.EndTime
	}
	return e
}

// Response модели

// WeeklyResponse расписание дня недели
type WeeklyResponse struct {
	ID        uuid.UUID        `json:"id"`
	DayOfWeek int              `json:"dayOfWeek"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	Breaks    []domain.Break   `json:"breaks"`
}

// ExceptionResponse исключение для даты
type ExceptionResponse struct {
	ID        uuid.UUID         `json:"id"`
	Date      string            `json:"date"`
	IsClosed  bool              `json:"isClosed"`
	StartTime *types.TimeString `json:"startTime,omitempty"`
	EndTime   *types.TimeString `json:"endTime,omitempty"`
	Notes     *string           `json:"notes,omitempty"`
}

// BlockedResponse блокировка интервала
type BlockedResponse struct {
	ID      uuid.UUID `json:"id"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Reason  string    `json:"reason"`
}

// FromDomainWeekly конвертирует расписание
func FromDomainWeekly(w *domain.WeeklySchedule) *WeeklyResponse {
	breaks := w.Breaks
	if breaks == nil {
		breaks = []domain.Break{}
	}
	return &WeeklyResponse{
		ID:        w.ID,
		DayOfWeek: int(w.DayOfWeek),
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		Breaks:    breaks,
	}
}

// FromDomainException конвертирует исключение
func FromDomainException(e *domain.ScheduleException) *ExceptionResponse {
	return &ExceptionResponse{
		ID:        e.ID,
		Date:      e.Date.Format(domain.DateFormat),
		IsClosed:  e.IsClosed,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Notes:     e.Notes,
	}
}

// FromDomainBlocked конвертирует блокировку
func FromDomainBlocked(b *domain.BlockedTime) *BlockedResponse {
	return &BlockedResponse{
		ID:      b.ID,
		StartAt: b.StartAt,
		EndAt:   b.EndAt,
		Reason:  b.Reason,
	}
}
