package email

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/mail.v2"
)

// Sender delivers transactional mail.
type Sender interface {
	SendPasswordReset(ctx context.Context, toEmail, toName, token string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	BaseURL   string
}

// dialer is the part of mail.Dialer the service uses.
type dialer interface {
	DialAndSend(m ...*mail.Message) error
}

// SMTPSender implements Sender over SMTP.
type SMTPSender struct {
	config SMTPConfig
	dialer dialer
	logger zerolog.Logger
}

// NewSMTPSender creates a Sender. Without SMTP credentials mail is only logged.
func NewSMTPSender(config SMTPConfig, logger zerolog.Logger) *SMTPSender {
	var d dialer
	if config.Host != "" && config.Username != "" {
		md := mail.NewDialer(config.Host, config.Port, config.Username, config.Password)
		md.Timeout = 20 * time.Second
		d = md
	}
	return &SMTPSender{config: config, dialer: d, logger: logger}
}

// ResetURL returns the link a user follows to finish a password reset.
func (s *SMTPSender) ResetURL(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", s.config.BaseURL, token)
}

// SendPasswordReset sends the password reset link.
func (s *SMTPSender) SendPasswordReset(ctx context.Context, toEmail, toName, token string) error {
	resetURL := s.ResetURL(token)

	if s.dialer == nil {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("resetURL", resetURL).
			Msg("SMTP credentials not configured - password reset email not sent")
		return nil
	}

	m := mail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Reset your StudyHub password")
	m.SetBody("text/html", fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Hello %s,</p>
				<p>Someone asked to reset the password of your StudyHub account. Follow the link below to choose a new one:</p>
				<p><a href="%s">Reset password</a></p>
				<p>The link expires in one hour. If you did not ask for this, ignore this email.</p>
			</div>
		</body>
		</html>
	`, toName, resetURL))

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send password reset email")
			return fmt.Errorf("send password reset email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
