package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/redmonkez12/greennest-api/internal/config"
	"github.com/redmonkez12/greennest-api/internal/logging"
)

var ErrNotConfigured = errors.New("smtp relay is not configured")

// Sender hands a message to the mail relay. *gomail.Dialer implements it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Service struct {
	sender Sender
	from   string
}

// NewService dials the SMTP relay described by cfg for every message.
func NewService(cfg config.EmailConfig) *Service {
	var sender Sender
	if cfg.SMTPHost != "" {
		sender = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}
	return NewServiceWithSender(sender, cfg.From)
}

func NewServiceWithSender(sender Sender, from string) *Service {
	return &Service{sender: sender, from: from}
}

// SendOTPEmail mails a password reset code. It blocks until the relay
// accepts or rejects the message.
func (s *Service) SendOTPEmail(ctx context.Context, to, code string, expiresAt time.Time) error {
	logger := logging.GetLoggerFromContext(ctx)

	if s.sender == nil {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	html, err := renderOTPEmail(code, expiresAt)
	if err != nil {
		logger.Error("failed to render otp email template", "error", err)
		return fmt.Errorf("render template: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset OTP")
	msg.SetBody("text/plain", fmt.Sprintf("Your OTP: %s", code))
	msg.AddAlternative("text/html", html)

	if err := s.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("otp email sent", "email", to)
	return nil
}

var otpTemplate = template.Must(template.New("otp").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background-color: #2F7D32;
            color: white;
            padding: 20px;
            text-align: center;
            border-radius: 5px 5px 0 0;
        }
        .content {
            background-color: #f9f9f9;
            padding: 30px;
            border-radius: 0 0 5px 5px;
        }
        .code {
            font-size: 32px;
            letter-spacing: 8px;
            font-weight: bold;
            text-align: center;
            margin: 20px 0;
        }
        .footer {
            margin-top: 20px;
            font-size: 12px;
            color: #666;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>GreenNest</h1>
    </div>
    <div class="content">
        <p>Use this code to reset your password:</p>
        <p class="code">{{.Code}}</p>
        <p>The code expires at {{.ExpiresAt}} and can be used once.</p>
        <div class="footer">
            <p>If you did not ask for a password reset, you can ignore this email.</p>
        </div>
    </div>
</body>
</html>
`))

func renderOTPEmail(code string, expiresAt time.Time) (string, error) {
	data := struct {
		Code      string
		ExpiresAt string
	}{
		Code:      code,
		ExpiresAt: expiresAt.UTC().Format("15:04 MST"),
	}

	var buf bytes.Buffer
	if err := otpTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
