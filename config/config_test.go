package config_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/registroapp/registro-api/config"
)

func TestNewDefaults(t *testing.T) {
	conf := config.New()

	assert.Equal(t, "4000", conf.Port)
	assert.Equal(t, 465, conf.EmailPort)
	assert.Equal(t, 10*time.Second, conf.EmailTimeout)
	assert.Equal(t, 6, conf.OTPCodeLength)
	assert.Equal(t, 5*time.Minute, conf.OTPTTL)
	assert.Equal(t, 5, conf.OTPMaxAttempts)
	assert.Equal(t, conf.OTPTTL, conf.OTPSweepInterval)
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "registro")
	t.Setenv("OTP_TTL", "10m")
	t.Setenv("OTP_MAX_ATTEMPTS", "3")
	t.Setenv("OTP_SWEEP_INTERVAL", "1m")
	t.Setenv("EMAIL_SECURE", "true")

	conf := config.New()

	assert.Equal(t, "8080", conf.Port)
	assert.Equal(t, "mongodb://localhost:27017", conf.URL)
	assert.Equal(t, "registro", conf.DatabaseName)
	assert.Equal(t, 10*time.Minute, conf.OTPTTL)
	assert.Equal(t, 3, conf.OTPMaxAttempts)
	assert.Equal(t, time.Minute, conf.OTPSweepInterval)
	assert.True(t, conf.EmailSecure)
}

func TestNewIgnoresMalformedValues(t *testing.T) {
	t.Setenv("OTP_MAX_ATTEMPTS", "many")
	t.Setenv("OTP_TTL", "soon")

	conf := config.New()

	assert.Equal(t, 5, conf.OTPMaxAttempts)
	assert.Equal(t, 5*time.Minute, conf.OTPTTL)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	config.ErrorStatus("failed to do the thing", http.StatusBadRequest, rr, errors.New("mocked-error"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "failed to do the thing"}`, rr.Body.String())
	assert.NotContains(t, rr.Body.String(), "mocked-error")
}
