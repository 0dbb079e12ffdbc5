package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

var (
	// ErrInvalidWindow end of a working window is not after its start
	ErrInvalidWindow = errors.New("domain: working window end must be after start")
	// ErrBreakOutsideWindow a break is not strictly inside the working window
	ErrBreakOutsideWindow = errors.New("domain: break must lie inside the working window")
	// ErrBreaksUnordered breaks overlap or are not in ascending order
	ErrBreaksUnordered = errors.New("domain: breaks must be ordered and non-overlapping")
)

// Break sub-interval of a working day, [Start, End)
type Break struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// WeeklySchedule working hours of the resource for one weekday
type WeeklySchedule struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	DayOfWeek  time.Weekday // 0 = Sunday
	StartTime  types.TimeString
	EndTime    types.TimeString
	Breaks     []Break
}

// Validate checks the window and that breaks are ordered and strictly within [StartTime, EndTime)
func (w *WeeklySchedule) Validate() error {
	if w.DayOfWeek < time.Sunday || w.DayOfWeek > time.Saturday {
		return ErrInvalidWindow
	}
	if err := w.StartTime.Validate(); err != nil {
		return err
	}
	if err := w.EndTime.Validate(); err != nil {
		return err
	}
	if !w.EndTime.IsAfter(w.StartTime) {
		return ErrInvalidWindow
	}

	prevEnd := w.StartTime
	for i, b := range w.Breaks {
		if b.Start.Validate() != nil || b.End.Validate() != nil || !b.End.IsAfter(b.Start) {
			return ErrInvalidWindow
		}
		if b.Start.IsBefore(w.StartTime) || b.End.IsAfter(w.EndTime) {
			return ErrBreakOutsideWindow
		}
		if i > 0 && b.Start.IsBefore(prevEnd) {
			return ErrBreaksUnordered
		}
		prevEnd = b.End
	}
	return nil
}

// ScheduleException overrides the weekly schedule for one calendar date
type ScheduleException struct {
	ID        uuid.UUID
	Date      time.Time // calendar date, time part ignored
	IsClosed  bool
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Notes     *string
}

// HasHours returns true if the exception supplies replacement working hours
func (e *ScheduleException) HasHours() bool {
	return !e.IsClosed && e.StartTime != nil && e.EndTime != nil
}

// Validate checks an exception is either closed or carries a valid window
func (e *ScheduleException) Validate() error {
	if e.IsClosed {
		return nil
	}
	if e.StartTime == nil || e.EndTime == nil {
		return ErrInvalidWindow
	}
	if e.StartTime.Validate() != nil || e.EndTime.Validate() != nil || !e.EndTime.IsAfter(*e.StartTime) {
		return ErrInvalidWindow
	}
	return nil
}

// BlockedTime ad-hoc unavailable interval [StartAt, EndAt)
type BlockedTime struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	Reason     string
	CreatedAt  time.Time
}

// WorkingWindow resolved hours of one concrete day
type WorkingWindow struct {
	Start  types.TimeString
	End    types.TimeString
	Breaks []Break
}
