package config

import "time"

// ChatConfig points at the chat webhook collaborator
type ChatConfig struct {
	WebhookURL string `json:"webhookUrl"`
	TimeoutMS  int    `json:"timeoutMs"`
}

// IsEnabled returns true if a webhook is configured
func (c ChatConfig) IsEnabled() bool {
	return c.WebhookURL != ""
}

// Timeout returns the per-request webhook timeout
func (c ChatConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// MailConfig holds the email-delivery collaborator settings
type MailConfig struct {
	Endpoint   string `json:"endpoint"`
	ServiceID  string `json:"serviceId"`
	TemplateID string `json:"templateId"`
	PublicKey  string `json:"-"` // Never serialize
	Recipient  string `json:"recipient"`
	TimeoutMS  int    `json:"timeoutMs"`
}

// IsEnabled returns true if submissions can be delivered
func (c MailConfig) IsEnabled() bool {
	return c.Endpoint != "" && c.ServiceID != "" && c.TemplateID != ""
}

// Timeout returns the delivery request timeout
func (c MailConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func defaultChatConfig() ChatConfig {
	return ChatConfig{
		WebhookURL: getEnv("CHAT_WEBHOOK_URL", ""),
		TimeoutMS:  getEnvInt("CHAT_TIMEOUT_MS", 15000),
	}
}

func defaultMailConfig() MailConfig {
	return MailConfig{
		Endpoint:   getEnv("MAIL_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send"),
		ServiceID:  getEnv("MAIL_SERVICE_ID", ""),
		TemplateID: getEnv("MAIL_TEMPLATE_ID", ""),
		PublicKey:  getEnv("MAIL_PUBLIC_KEY", ""),
		Recipient:  getEnv("MAIL_RECIPIENT", ""),
		TimeoutMS:  getEnvInt("MAIL_TIMEOUT_MS", 10000),
	}
}
