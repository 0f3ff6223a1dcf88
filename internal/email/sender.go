// Package email sends transactional mail over SMTP.
package email

import (
	"context"
	"fmt"

	"github.com/Iamalive23802/Dream-Trade/platform/config"
	"github.com/Iamalive23802/Dream-Trade/platform/logger"

	"github.com/wneessen/go-mail"
)

// Sender delivers transactional mail. When SMTP is not configured the
// constructor returns nil and callers skip mail entirely.
type Sender struct {
	cfg config.EmailConfig
	log *logger.Logger
}

// NewSender creates a sender, or nil when email is disabled.
func NewSender(cfg config.EmailConfig, log *logger.Logger) *Sender {
	if !cfg.GetEmailEnabled() {
		return nil
	}
	return &Sender{cfg: cfg, log: log}
}

// SendCredentials mails a freshly provisioned account its login details.
func (s *Sender) SendCredentials(ctx context.Context, to, name, password string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.GetEmailFromName(), s.cfg.GetEmailFromAddress()); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject("Your Dream Trade CRM account")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\nYour CRM account is ready.\n\nEmail: %s\nPassword: %s\n\nPlease change your password after the first login.\n",
		name, to, password,
	))

	client, err := mail.NewClient(s.cfg.GetSMTPHost(),
		mail.WithPort(s.cfg.GetSMTPPort()),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.GetSMTPUsername()),
		mail.WithPassword(s.cfg.GetSMTPPassword()),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	s.log.Info("credential mail sent", "to", to)
	return nil
}
