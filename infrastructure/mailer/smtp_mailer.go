package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"taskboard/domain/ports"
	"taskboard/pkg/config"
	"taskboard/pkg/logger"
)

// SMTPMailer sends verification mail through a plain SMTP relay
// (Mailtrap in development). Host left empty disables delivery, which keeps
// registration usable in environments without a relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) ports.Mailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, to, verificationLink string) error {
	if m.cfg.Host == "" {
		logger.WarnContext(ctx, "SMTP not configured, skipping verification email", "to", to)
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Verify your email\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("<h1>Email Verification</h1>")
	b.WriteString("<p>Please click the link below to verify your email address:</p>")
	fmt.Fprintf(&b, `<a href="%s">Verify Email</a>`, verificationLink)
	b.WriteString("<p>If you didn't create an account, you can ignore this email.</p>")

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(b.String())); err != nil {
		logger.ErrorContext(ctx, "Failed to send verification email", "to", to, "error", err)
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	logger.InfoContext(ctx, "Verification email sent", "to", to)
	return nil
}
