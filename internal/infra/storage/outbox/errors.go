package outbox

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись не найдена или не в ожидаемом статусе
	ErrEntryNotFound = errors.New("outbox.repository: entry not found in expected status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("outbox.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("outbox.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("outbox.repository: failed to scan row")
)
