package email

import (
	"context"

	"marketplace_backend/platform/config"
)

// RFPUnlockedNotice describes an unlock for the RFP's contact person.
type RFPUnlockedNotice struct {
	ContactName string
	Company     string
	RFPTitle    string
	RFPID       string
}

// Sender delivers transactional e-mail.
type Sender interface {
	SendRFPUnlockedEmail(ctx context.Context, toEmail string, notice RFPUnlockedNotice) error
}

// NoopSender drops every message. Used when e-mail is disabled.
type NoopSender struct{}

func (NoopSender) SendRFPUnlockedEmail(ctx context.Context, toEmail string, notice RFPUnlockedNotice) error {
	return nil
}

// NewSender returns an SMTP sender when e-mail is enabled, otherwise a NoopSender.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}
