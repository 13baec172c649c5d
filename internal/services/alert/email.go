package alert

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"facegate/internal/access"
	"facegate/internal/config"
	"facegate/internal/logger"
)

// Email dispatches the intruder alert over SMTP. Best-effort single attempt;
// the caller has already reset the attempt counter.
type Email struct {
	host     string
	port     int
	sender   string
	password string
	logger   *logger.Logger
}

// NewEmail creates the SMTP dispatcher.
func NewEmail(cfg *config.Config, logger *logger.Logger) *Email {
	return &Email{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		sender:   cfg.SenderEmail,
		password: cfg.SenderPassword,
		logger:   logger,
	}
}

// Send delivers one alert message.
func (e *Email) Send(recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("no alert recipient configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.sender)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	dialer := gomail.NewDialer(e.host, e.port, e.sender, e.password)
	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}

	e.logger.Info("Alert email sent to %s", recipient)
	return nil
}

// Disabled is the dispatcher used when alerting is turned off.
type Disabled struct{}

func (Disabled) Send(recipient, subject, body string) error {
	return access.ErrUnavailable
}
