package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"finhealth/internal/config"
	"finhealth/internal/model"
)

var ErrDeliveryRejected = errors.New("email delivery rejected")

// Mailer hands a completed assessment to the email-delivery collaborator
type Mailer interface {
	Send(ctx context.Context, msg *model.EmailMessage) error
}

// NewMailer returns an HTTP mailer, or a log-only mailer when delivery is
// not configured.
func NewMailer(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if !cfg.IsEnabled() {
		logger.Warn("mail delivery not configured, submissions will only be logged")
		return &logMailer{logger: logger}
	}
	return &HTTPMailer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

// HTTPMailer posts EmailJS-style requests. It never retries.
type HTTPMailer struct {
	cfg    config.MailConfig
	client *http.Client
}

type emailRequest struct {
	ServiceID      string              `json:"service_id"`
	TemplateID     string              `json:"template_id"`
	UserID         string              `json:"user_id"`
	TemplateParams *model.EmailMessage `json:"template_params"`
}

func (m *HTTPMailer) Send(ctx context.Context, msg *model.EmailMessage) error {
	if msg.Recipient == "" {
		msg.Recipient = m.cfg.Recipient
	}
	body, err := json.Marshal(emailRequest{
		ServiceID:      m.cfg.ServiceID,
		TemplateID:     m.cfg.TemplateID,
		UserID:         m.cfg.PublicKey,
		TemplateParams: msg,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrDeliveryRejected, resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}

type logMailer struct {
	logger *zap.Logger
}

func (m *logMailer) Send(_ context.Context, msg *model.EmailMessage) error {
	m.logger.Info("submission (mail disabled)",
		zap.String("replyTo", msg.ReplyTo),
		zap.String("company", msg.SubmitterCompany),
		zap.String("summary", msg.ResultsSummary),
	)
	return nil
}
