package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/calendar"
)

type interval struct {
	start time.Time
	end   time.Time
}

// resolveWindow определяет рабочие часы дня
// Закрытое исключение или отсутствие и исключения, и недельного расписания означает выходной
func resolveWindow(weekly *domain.WeeklySchedule, exception *domain.ScheduleException) (*domain.WorkingWindow, bool) {
	if exception != nil && exception.IsClosed {
		return nil, false
	}

	var breaks []domain.Break
	if weekly != nil {
		breaks = weekly.Breaks
	}

	if exception != nil && exception.HasHours() {
		return &domain.WorkingWindow{Start: *exception.StartTime, End: *exception.EndTime, Breaks: breaks}, true
	}

	if weekly == nil {
		return nil, false
	}

	return &domain.WorkingWindow{Start: weekly.StartTime, End: weekly.EndTime, Breaks: breaks}, true
}

// generateSlots перебирает кандидатов с шагом SlotStepMinutes от начала рабочего окна
// и оставляет те, что помещаются до закрытия, не в прошлом и не пересекаются с занятыми интервалами
func generateSlots(
	date time.Time,
	loc *time.Location,
	window *domain.WorkingWindow,
	totalSpan int,
	busy []interval,
	now time.Time,
) []domain.AvailableSlot {
	slots := make([]domain.AvailableSlot, 0)

	// перерывы переводим в абсолютное время этого дня
	for _, b := range window.Breaks {
		busy = append(busy, interval{start: b.Start.On(date, loc), end: b.End.On(date, loc)})
	}

	closing := window.End.On(date, loc)
	opening := window.Start.Minutes()

	for offset := 0; opening+offset+totalSpan <= window.End.Minutes(); offset += domain.SlotStepMinutes {
		candidate := window.Start.AddMinutes(offset)
		start := candidate.On(date, loc)
		end := calendar.AddMinutes(start, totalSpan)

		if end.After(closing) {
			break
		}

		// прошедшие сегодня слоты не предлагаем
		if start.Before(now) {
			continue
		}

		if overlapsAny(start, end, busy) {
			continue
		}

		slots = append(slots, domain.AvailableSlot{Time: candidate, Available: true})
	}

	return slots
}

func overlapsAny(start, end time.Time, busy []interval) bool {
	for _, b := range busy {
		if calendar.Overlaps(start, end, b.start, b.end) {
			return true
		}
	}
	return false
}
