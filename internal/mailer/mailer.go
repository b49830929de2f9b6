// File: internal/mailer/mailer.go

// Package mailer sends operator notification emails over SMTP. Sending
// is always best-effort; callers log failures and carry on.
package mailer

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"propmatics_backend/internal/config"

	"go.uber.org/zap"
)

// Mailer sends plain-text emails.
type Mailer interface {
	Send(to []string, subject, body string) error
}

type smtpMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	logger   *zap.Logger
}

// NewSMTPMailer creates a mailer from application configuration. With no
// SMTP host configured it returns a no-op mailer so local setups work
// without a mail server.
func NewSMTPMailer(cfg *config.Config, logger *zap.Logger) Mailer {
	if cfg.SMTPHost == "" {
		logger.Warn("SMTP host not configured, outgoing mail is disabled")
		return &noopMailer{logger: logger}
	}
	return &smtpMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
		logger:   logger,
	}
}

func (m *smtpMailer) Send(to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, to, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", strings.Join(to, ", "), err)
	}
	m.logger.Info("Email sent", zap.Strings("to", to), zap.String("subject", subject))
	return nil
}

type noopMailer struct {
	logger *zap.Logger
}

func (m *noopMailer) Send(to []string, subject, _ string) error {
	m.logger.Debug("Mail disabled, dropping message",
		zap.Strings("to", to), zap.String("subject", subject))
	return nil
}
