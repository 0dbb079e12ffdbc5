package update_booking_status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrInvalidTransition возвращается, когда переход статуса не разрешен
	ErrInvalidTransition = errors.New("update_booking_status: status transition is not allowed")

	// ErrStatusChanged возвращается, когда статус изменился параллельно
	ErrStatusChanged = errors.New("update_booking_status: booking status changed concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
