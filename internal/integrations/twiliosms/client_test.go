package twiliosms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/m04kA/SMC-GroomingService/internal/templates"
	"github.com/m04kA/SMC-GroomingService/pkg/logger"
	"github.com/m04kA/SMC-GroomingService/pkg/ptr"
)

type fakeAPI struct {
	params *twilioApi.CreateMessageParams
	resp   *twilioApi.ApiV2010Message
	err    error
}

func (f *fakeAPI) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = params
	return f.resp, f.err
}

func TestClient_Send(t *testing.T) {
	api := &fakeAPI{resp: &twilioApi.ApiV2010Message{Sid: ptr.Ptr("SM123")}}
	c := NewClientWithAPI(api, "+15005550006", logger.NewNop())

	sid, err := c.Send(context.Background(), "694 896 5371", templates.Message{Body: "γεια"})
	require.NoError(t, err)
	assert.Equal(t, "SM123", sid)

	require.NotNil(t, api.params)
	assert.Equal(t, "+306948965371", *api.params.To)
	assert.Equal(t, "+15005550006", *api.params.From)
	assert.Equal(t, "γεια", *api.params.Body)
}

func TestClient_SendErrors(t *testing.T) {
	_, err := NewClientWithAPI(&fakeAPI{}, "", logger.NewNop()).Send(context.Background(), "+306948965371", templates.Message{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	api := &fakeAPI{err: errors.New("21211 invalid 'To' number")}
	_, err = NewClientWithAPI(api, "+15005550006", logger.NewNop()).Send(context.Background(), "+306948965371", templates.Message{})
	assert.ErrorIs(t, err, ErrSend)

	api = &fakeAPI{resp: &twilioApi.ApiV2010Message{}}
	_, err = NewClientWithAPI(api, "+15005550006", logger.NewNop()).Send(context.Background(), "+306948965371", templates.Message{})
	assert.ErrorIs(t, err, ErrSend)
}
