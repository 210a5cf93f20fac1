// Package mail sends transactional email (address verification) over SMTP.
package mail

//go:generate mockgen -source=mail.go -destination=../mock/mail_mock.go -package=mock

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
)

var (
	ErrNotConfigured = errors.New("mail transport is not configured")
	ErrSendingMail   = errors.New("failed to send mail")
)

// Mailer delivers a single message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a plain-text mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends mail through one SMTP relay using PLAIN auth.
type SMTPMailer struct {
	cfg    config.Mail
	send   sendFunc
	logger *logger.Logger
}

func NewSMTPMailer(cfg config.Mail, log *logger.Logger) *SMTPMailer {
	log.Debug().Str("smtp_host", cfg.SMTPHost).Msg("creating smtp mailer")
	return &SMTPMailer{
		cfg:    cfg,
		send:   smtp.SendMail,
		logger: log,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	log := logger.FromContext(ctx)

	if m.cfg.SMTPHost == "" {
		log.Error().Str("func", "SMTPMailer.Send").Msg("smtp host is empty")
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(m.cfg.SMTPHost, strconv.Itoa(m.cfg.SMTPPort))

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	}

	if err := m.send(addr, auth, m.cfg.From, []string{msg.To}, buildMessage(m.cfg.From, msg)); err != nil {
		log.Err(err).Str("func", "SMTPMailer.Send").Str("to", msg.To).Msg("smtp delivery failed")
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}

	log.Info().Str("func", "SMTPMailer.Send").Str("to", msg.To).Msg("mail sent")
	return nil
}

func buildMessage(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// VerificationMessage renders the mail carrying the email verification link.
func VerificationMessage(to, baseURL, token string) Message {
	link := strings.TrimRight(baseURL, "/") + "/verify/" + token
	return Message{
		To:      to,
		Subject: "Verify your email address",
		Body: "Please confirm your email address by opening the link below.\r\n\r\n" +
			link + "\r\n\r\nThe link expires in 15 minutes.",
	}
}
