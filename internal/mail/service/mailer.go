// Package service delivers e-mail messages.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/allisson/bookstore/internal/mail/domain"
)

// Mailer delivers a single message.
type Mailer interface {
	Send(ctx context.Context, message *domain.Message) error
}

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends messages through an SMTP relay using PLAIN auth.
type SMTPMailer struct {
	config   SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{config: config, sendMail: smtp.SendMail}
}

// Send delivers message. The context is only checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, message *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if message.Recipient == "" || strings.ContainsAny(message.Recipient, "\r\n") {
		return domain.ErrInvalidRecipient
	}

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	addr := net.JoinHostPort(m.config.Host, strconv.Itoa(m.config.Port))
	if err := m.sendMail(addr, auth, m.config.From, []string{message.Recipient}, m.compose(message)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func (m *SMTPMailer) compose(message *domain.Message) []byte {
	subject := strings.NewReplacer("\r", " ", "\n", " ").Replace(message.Subject)

	var b strings.Builder
	b.WriteString("From: " + m.config.From + "\r\n")
	b.WriteString("To: " + message.Recipient + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(message.Body)
	return []byte(b.String())
}

// LogMailer writes messages to the logger instead of sending them. Used when no SMTP
// relay is configured; bodies are only logged at debug level.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a new LogMailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs message.
func (m *LogMailer) Send(ctx context.Context, message *domain.Message) error {
	if message.Recipient == "" {
		return domain.ErrInvalidRecipient
	}
	m.logger.InfoContext(ctx, "mail delivery skipped, no smtp relay configured",
		slog.String("message_id", message.ID),
		slog.String("recipient", message.Recipient),
		slog.String("subject", message.Subject))
	m.logger.DebugContext(ctx, "mail body",
		slog.String("message_id", message.ID),
		slog.String("body", message.Body))
	return nil
}
