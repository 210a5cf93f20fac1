package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Mail {
	return config.Mail{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		Username: "shop",
		Password: "secret",
		From:     "noreply@example.com",
	}
}

func TestSMTPMailer_Send(t *testing.T) {
	m := NewSMTPMailer(testConfig(), logger.Nop())

	var gotAddr, gotFrom string
	var gotTo []string
	var gotBody []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotBody = addr, from, to, msg
		assert.NotNil(t, a)
		return nil
	}

	err := m.Send(context.Background(), VerificationMessage("alice@example.com", "http://localhost:8080/", "tok"))
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"alice@example.com"}, gotTo)
	assert.Contains(t, string(gotBody), "Subject: Verify your email address\r\n")
	assert.Contains(t, string(gotBody), "http://localhost:8080/verify/tok")
}

func TestSMTPMailer_SendFailure(t *testing.T) {
	m := NewSMTPMailer(testConfig(), logger.Nop())
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := m.Send(context.Background(), Message{To: "bob@example.com"})
	require.ErrorIs(t, err, ErrSendingMail)
}

func TestSMTPMailer_NotConfigured(t *testing.T) {
	m := NewSMTPMailer(config.Mail{}, logger.Nop())
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}

	err := m.Send(context.Background(), Message{To: "bob@example.com"})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	m := NewSMTPMailer(testConfig(), logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Send(ctx, Message{To: "bob@example.com"})
	require.ErrorIs(t, err, context.Canceled)
}
