package reschedule_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrBookingNotActive возвращается при переносе завершенного или отмененного бронирования
	ErrBookingNotActive = errors.New("reschedule_booking: booking is not active")

	// ErrSlotNotAvailable возвращается, когда новое время пересекается с другим бронированием
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
