// Package dryrun is a notification sender that only logs, used when provider
// credentials are not configured.
package dryrun

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/templates"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Sender logs messages instead of delivering them
type Sender struct {
	channel domain.Channel
	log     Logger
}

// NewSender creates a dry-run sender for channel
func NewSender(channel domain.Channel, log Logger) *Sender {
	return &Sender{channel: channel, log: log}
}

// Send logs the message and returns a synthetic provider id
func (s *Sender) Send(_ context.Context, to string, msg templates.Message) (string, error) {
	id := fmt.Sprintf("dryrun-%s", uuid.NewString())
	s.log.Info("DryRun %s to=%s subject=%q body_chars=%d id=%s",
		s.channel, to, msg.Subject, utf8.RuneCountInString(msg.Body), id)
	return id, nil
}
