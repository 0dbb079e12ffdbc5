package resendmail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/templates"
	"github.com/m04kA/SMC-GroomingService/pkg/logger"
)

func TestClient_Send(t *testing.T) {
	var got sendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email-123"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "re_test", "Musky Paws <bookings@muskypaws.gr>", time.Second, logger.NewNop())

	id, err := c.Send(context.Background(), "maria@example.gr", templates.Message{Subject: "Θέμα", Body: "<p>γεια</p>"})
	require.NoError(t, err)
	assert.Equal(t, "email-123", id)
	assert.Equal(t, []string{"maria@example.gr"}, got.To)
	assert.Equal(t, "Θέμα", got.Subject)
	assert.Equal(t, "Musky Paws <bookings@muskypaws.gr>", got.From)
}

func TestClient_SendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid to field"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "re_test", "x <x@example.gr>", time.Second, logger.NewNop())

	_, err := c.Send(context.Background(), "bad", templates.Message{})
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "Invalid to field")
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient("", "", "", time.Second, logger.NewNop())

	_, err := c.Send(context.Background(), "maria@example.gr", templates.Message{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
