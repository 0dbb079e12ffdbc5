// Package twiliosms sends SMS through the Twilio Messages API.
package twiliosms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/m04kA/SMC-GroomingService/internal/templates"
	"github.com/m04kA/SMC-GroomingService/pkg/phone"
)

var (
	// ErrNotConfigured возвращается, когда не задан номер отправителя
	ErrNotConfigured = errors.New("twiliosms client: sender number is not set")

	// ErrSend возвращается, когда Twilio отклонил сообщение
	ErrSend = errors.New("twiliosms client: failed to send message")
)

// MessageCreator часть Twilio API, которой пользуется клиент
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client отправитель SMS
type Client struct {
	api  MessageCreator
	from string
	log  Logger
}

// NewClient создает клиента с учетными данными аккаунта Twilio
func NewClient(accountSID, authToken, from string, log Logger) *Client {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return NewClientWithAPI(rest.Api, from, log)
}

// NewClientWithAPI создает клиента поверх произвольной реализации API
func NewClientWithAPI(api MessageCreator, from string, log Logger) *Client {
	return &Client{api: api, from: from, log: log}
}

// Send отправляет SMS и возвращает SID сообщения
func (c *Client) Send(ctx context.Context, to string, msg templates.Message) (string, error) {
	if c.from == "" {
		return "", ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// номера без кода страны считаем греческими
	if !strings.HasPrefix(to, "+") {
		to = phone.Normalize(to)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(c.from)
	params.SetBody(msg.Body)

	resp, err := c.api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSend, err)
	}
	if resp == nil || resp.Sid == nil {
		return "", fmt.Errorf("%w: no SID returned", ErrSend)
	}

	c.log.Info("SMS sent to %s, SID: %s", to, *resp.Sid)
	return *resp.Sid, nil
}
