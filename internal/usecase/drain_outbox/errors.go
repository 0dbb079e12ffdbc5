package drain_outbox

import "errors"

var (
	// ErrInternal возвращается, когда не удалось получить пакет записей
	ErrInternal = errors.New("drain_outbox: internal error")

	// errNoSender провайдер для канала не настроен
	errNoSender = errors.New("no sender configured for channel")
)
