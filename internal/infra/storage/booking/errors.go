package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotConflict возвращается, когда интервал пересекается с активным бронированием (нарушено исключающее ограничение)
	ErrSlotConflict = errors.New("booking.repository: slot conflicts with an active booking")

	// ErrStatusChanged возвращается, когда статус бронирования изменился между чтением и обновлением
	ErrStatusChanged = errors.New("booking.repository: booking status changed concurrently")

	// ErrBookingNotActive возвращается при попытке перенести неактивное бронирование
	ErrBookingNotActive = errors.New("booking.repository: booking is not active")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
