package schedule

import "errors"

var (
	// ErrExceptionNotFound возвращается, когда для даты нет исключения
	ErrExceptionNotFound = errors.New("schedule: exception not found")

	// ErrBlockedTimeNotFound возвращается, когда блокировка времени не найдена
	ErrBlockedTimeNotFound = errors.New("schedule: blocked time not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
