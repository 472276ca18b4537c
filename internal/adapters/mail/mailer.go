package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/middleware"
	"github.com/SscSPs/gym_management_app/internal/platform/config"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer delivers plain-text mail through an SMTP relay.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
	send sendFunc
}

// NewMailer returns an SMTP mailer, or a LogMailer when no host is configured.
func NewMailer(cfg config.SMTPConfig) portssvc.Mailer {
	if cfg.Host == "" {
		return LogMailer{}
	}
	m := &SMTPMailer{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		from: cfg.From,
		send: smtp.SendMail,
	}
	if cfg.Username != "" {
		m.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return m
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.send(m.addr, m.auth, m.from, []string{to}, buildMessage(m.from, to, subject, body)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Mail sent", slog.String("to", to), slog.String("subject", subject))
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

// LogMailer writes mail to the request logger instead of sending it. Used in development.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, to, subject, body string) error {
	middleware.GetLoggerFromCtx(ctx).Info("Mail not sent, SMTP is not configured",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body))
	return nil
}
