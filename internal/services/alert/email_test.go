package alert

import (
	"errors"
	"testing"

	"facegate/internal/access"
	"facegate/internal/config"
	"facegate/internal/logger"
)

func TestEmail_RequiresRecipient(t *testing.T) {
	cfg := &config.Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     465,
		SenderEmail:  "device@example.com",
		LogDirectory: t.TempDir(),
	}
	dispatcher := NewEmail(cfg, logger.NewLogger(cfg))

	if err := dispatcher.Send("", "Intruder Alert!", "body"); err == nil {
		t.Error("Send should fail without a recipient")
	}
}

func TestDisabled_ReportsUnavailable(t *testing.T) {
	err := Disabled{}.Send("owner@example.com", "Intruder Alert!", "body")
	if !errors.Is(err, access.ErrUnavailable) {
		t.Errorf("Disabled.Send = %v, expected ErrUnavailable", err)
	}
}
