package resendmail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/templates"
)

// DefaultBaseURL адрес API по умолчанию
const DefaultBaseURL = "https://api.resend.com"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для отправки писем через Resend
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента; from в формате "Имя <адрес>"
func NewClient(baseURL, apiKey, from string, timeout time.Duration, log Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет письмо и возвращает id сообщения у провайдера
func (c *Client) Send(ctx context.Context, to string, msg templates.Message) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{to},
		Subject: msg.Subject,
		HTML:    msg.Body,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			return "", fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, errResp.Message)
		}
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrRejected, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("%w: empty message id", ErrInvalidResponse)
	}

	c.log.Info("Email sent to %s, id=%s", to, out.ID)
	return out.ID, nil
}
