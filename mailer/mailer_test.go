package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/registroapp/registro-api/config"
)

func TestNewPicksSendGridWhenKeyPresent(t *testing.T) {
	conf := &config.Config{
		SendGridAPIKey: "SG.fake",
		EmailUser:      "registro@example.com",
		OTPTTL:         5 * time.Minute,
	}

	sender := New(conf)
	sg, ok := sender.(*SendGridSender)
	assert.True(t, ok)
	assert.Equal(t, "registro@example.com", sg.From)
	assert.Equal(t, 5*time.Minute, sg.TTL)
}

func TestNewFallsBackToSMTP(t *testing.T) {
	conf := &config.Config{
		EmailHost:   "smtp.example.com",
		EmailPort:   465,
		EmailSecure: true,
		EmailUser:   "registro@example.com",
		EmailPass:   "hunter2",
		OTPTTL:      5 * time.Minute,
	}

	sender := New(conf)
	smtp, ok := sender.(*SMTPSender)
	assert.True(t, ok)
	assert.Equal(t, "smtp.example.com", smtp.Host)
	assert.Equal(t, 465, smtp.Port)
	assert.True(t, smtp.Secure)
}

func TestPlainBodyMentionsCodeAndExpiry(t *testing.T) {
	body := plainBody("123456", 5*time.Minute)
	assert.Contains(t, body, "123456")
	assert.Contains(t, body, "5 minutos")
}
