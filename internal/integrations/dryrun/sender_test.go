package dryrun

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/templates"
	"github.com/m04kA/SMC-GroomingService/pkg/logger"
)

func TestSender_Send(t *testing.T) {
	s := NewSender(domain.ChannelSMS, logger.NewNop())

	first, err := s.Send(context.Background(), "+306948965371", templates.Message{Body: "γεια"})
	require.NoError(t, err)
	second, err := s.Send(context.Background(), "+306948965371", templates.Message{Body: "γεια"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "dryrun-"))
	assert.NotEqual(t, first, second)
}
