package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"

	"github.com/registroapp/registro-api/config"
	templates "github.com/registroapp/registro-api/templates/html"
)

const fromName = "Registro"

// Sender delivers a verification code to a destination address. Send must
// respect the context deadline; a timed out delivery is a failed delivery,
// never a silent success.
type Sender interface {
	SendCode(ctx context.Context, to, codigo string) error
}

// New picks the transport from the config: SendGrid when an API key is
// configured, a plain SMTP relay otherwise.
func New(conf *config.Config) Sender {
	if conf.SendGridAPIKey != "" {
		return &SendGridSender{
			APIKey: conf.SendGridAPIKey,
			From:   conf.EmailUser,
			TTL:    conf.OTPTTL,
		}
	}
	return &SMTPSender{
		Host:     conf.EmailHost,
		Port:     conf.EmailPort,
		Secure:   conf.EmailSecure,
		User:     conf.EmailUser,
		Password: conf.EmailPass,
		TTL:      conf.OTPTTL,
	}
}

func subject() string { return "Código de verificación" }

func plainBody(codigo string, ttl time.Duration) string {
	return fmt.Sprintf("Tu código es: %s. Expira en %d minutos.", codigo, int(ttl.Minutes()))
}

// SMTPSender delivers through an SMTP relay configured with
// host/port/secure-flag/credentials
type SMTPSender struct {
	Host     string
	Port     int
	Secure   bool
	User     string
	Password string
	TTL      time.Duration
}

// SendCode dials the relay and sends the code. gomail has no context support,
// so the dial-and-send runs in a goroutine and the deadline is enforced here.
func (s *SMTPSender) SendCode(ctx context.Context, to, codigo string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.User, fromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject())
	m.SetBody("text/plain", plainBody(codigo, s.TTL))
	m.AddAlternative("text/html", templates.RenderVerificationCode(codigo, int(s.TTL.Minutes())))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	d.SSL = s.Secure

	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send verification email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("verification email send timed out: %w", ctx.Err())
	}
}

// SendGridSender delivers through the SendGrid API
type SendGridSender struct {
	APIKey string
	From   string
	TTL    time.Duration
}

// SendCode sends the code through SendGrid, treating any non-2xx response as
// a delivery failure
func (s *SendGridSender) SendCode(ctx context.Context, to, codigo string) error {
	from := mail.NewEmail(fromName, s.From)
	message := mail.NewSingleEmail(
		from,
		subject(),
		mail.NewEmail("", to),
		plainBody(codigo, s.TTL),
		templates.RenderVerificationCode(codigo, int(s.TTL.Minutes())),
	)

	client := sendgrid.NewSendClient(s.APIKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected verification email: status %d", response.StatusCode)
	}
	return nil
}
