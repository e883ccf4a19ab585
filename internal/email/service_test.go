package email

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/redmonkez12/greennest-api/internal/config"
)

type recordingSender struct {
	messages []*gomail.Message
	err      error
}

func (r *recordingSender) DialAndSend(m ...*gomail.Message) error {
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, m...)
	return nil
}

func TestSendOTPEmail(t *testing.T) {
	sender := &recordingSender{}
	svc := NewServiceWithSender(sender, "noreply@greennest.test")

	expires := time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)
	require.NoError(t, svc.SendOTPEmail(context.Background(), "a@x.com", "042517", expires))
	require.Len(t, sender.messages, 1)

	msg := sender.messages[0]
	assert.Equal(t, []string{"Password Reset OTP"}, msg.GetHeader("Subject"))
	assert.Equal(t, []string{"a@x.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"noreply@greennest.test"}, msg.GetHeader("From"))

	var raw bytes.Buffer
	_, err := msg.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "Your OTP: 042517")
	assert.Contains(t, raw.String(), "text/html")
}

func TestSendOTPEmail_RelayError(t *testing.T) {
	svc := NewServiceWithSender(&recordingSender{err: errors.New("550 mailbox unavailable")}, "noreply@greennest.test")

	err := svc.SendOTPEmail(context.Background(), "a@x.com", "123456", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "550 mailbox unavailable")
}

func TestSendOTPEmail_NotConfigured(t *testing.T) {
	svc := NewService(config.EmailConfig{})

	err := svc.SendOTPEmail(context.Background(), "a@x.com", "123456", time.Now())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSendOTPEmail_CanceledContext(t *testing.T) {
	sender := &recordingSender{}
	svc := NewServiceWithSender(sender, "noreply@greennest.test")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.SendOTPEmail(ctx, "a@x.com", "123456", time.Now())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sender.messages)
}

func TestRenderOTPEmail(t *testing.T) {
	html, err := renderOTPEmail("000123", time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, html, `<p class="code">000123</p>`)
	assert.Contains(t, html, "09:30 UTC")
}
