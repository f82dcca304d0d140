package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"finhealth/internal/config"
	"finhealth/internal/model"
)

func TestHTTPMailerSend(t *testing.T) {
	received := make(chan map[string]interface{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &payload))
		received <- payload
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := config.MailConfig{
		Endpoint:   srv.URL,
		ServiceID:  "svc",
		TemplateID: "tpl",
		PublicKey:  "pub",
		Recipient:  "leads@example.com",
		TimeoutMS:  2000,
	}
	m := NewMailer(cfg, zap.NewNop())
	require.IsType(t, &HTTPMailer{}, m)

	err := m.Send(context.Background(), &model.EmailMessage{ReplyTo: "sara@acme.example", SubmitterName: "Sara"})
	require.NoError(t, err)

	got := <-received
	assert.Equal(t, "svc", got["service_id"])
	assert.Equal(t, "tpl", got["template_id"])
	assert.Equal(t, "pub", got["user_id"])
	params, ok := got["template_params"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "leads@example.com", params["recipient"])
	assert.Equal(t, "sara@acme.example", params["reply_to"])
}

func TestHTTPMailerRejected(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "The public key is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()

	m := NewMailer(config.MailConfig{Endpoint: srv.URL, ServiceID: "s", TemplateID: "t", TimeoutMS: 2000}, zap.NewNop())
	err := m.Send(context.Background(), &model.EmailMessage{})
	assert.ErrorIs(t, err, ErrDeliveryRejected)
	assert.Equal(t, int32(1), calls.Load(), "no retry")
}

func TestNewMailerDisabledLogsOnly(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := NewMailer(config.MailConfig{}, zap.New(core))

	warnings := logs.FilterLevelExact(zapcore.WarnLevel)
	require.Equal(t, 1, warnings.Len(), "startup warning is logged once")
	assert.Contains(t, warnings.All()[0].Message, "mail delivery not configured")

	assert.NoError(t, m.Send(context.Background(), &model.EmailMessage{SubmitterCompany: "Acme"}))
	sent := logs.FilterMessage("submission (mail disabled)")
	require.Equal(t, 1, sent.Len())
	assert.Equal(t, "Acme", sent.All()[0].ContextMap()["company"])
}
