// Package mailer delivers confirmation codes out-of-band. Delivery is
// attempted once; a failure is reported to the caller, never retried.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"cinehub/internal/config"
)

type Mailer interface {
	SendConfirmationCode(ctx context.Context, email, code string) error
}

// New returns an SMTP mailer when SMTP_HOST is configured, otherwise a
// log-only mailer for local development.
func New(cfg *config.Config, logger *slog.Logger) Mailer {
	if cfg.SMTPHost == "" {
		return &LogMailer{logger: logger}
	}
	return &SMTPMailer{
		addr:     net.JoinHostPort(cfg.SMTPHost, fmt.Sprintf("%d", cfg.SMTPPort)),
		host:     cfg.SMTPHost,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.EmailFrom,
	}
}

// SMTPMailer sends the code over plain SMTP.
type SMTPMailer struct {
	addr     string
	host     string
	username string
	password string
	from     string
}

func (m *SMTPMailer) SendConfirmationCode(ctx context.Context, email, code string) error {
	msg := m.buildMessage(email, code)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(m.addr, auth, m.from, []string{email}, msg); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) buildMessage(email, code string) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", email))
	b.WriteString("Subject: Your confirmation code\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(fmt.Sprintf("Your confirmation code is: %s\r\n", code))
	return []byte(b.String())
}

// LogMailer writes the code to the log instead of sending it. Development
// only; codes are credentials and must not be logged in production.
type LogMailer struct {
	logger *slog.Logger
}

func (m *LogMailer) SendConfirmationCode(ctx context.Context, email, code string) error {
	m.logger.Info("confirmation code issued (SMTP not configured)",
		"email", email,
		"code", code,
	)
	return nil
}
