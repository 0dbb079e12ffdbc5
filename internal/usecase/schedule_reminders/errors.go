package schedule_reminders

import "errors"

var (
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("schedule_reminders: internal error")
)
