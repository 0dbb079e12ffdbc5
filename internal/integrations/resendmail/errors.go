package resendmail

import "errors"

var (
	// ErrNotConfigured возвращается, когда не задан API ключ
	ErrNotConfigured = errors.New("resendmail client: api key is not set")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("resendmail client: internal error")

	// ErrRejected возвращается, когда провайдер отклонил письмо
	ErrRejected = errors.New("resendmail client: message rejected")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("resendmail client: invalid response")
)
