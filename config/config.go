package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	Port         string
	BaseURL      string

	EmailHost    string
	EmailPort    int
	EmailSecure  bool
	EmailUser    string
	EmailPass    string
	EmailTimeout time.Duration

	SendGridAPIKey string

	JWTSecret string

	OTPCodeLength    int
	OTPTTL           time.Duration
	OTPMaxAttempts   int
	OTPSweepInterval time.Duration
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	conf := &Config{
		URL:            os.Getenv("DB_URI"),
		DatabaseName:   os.Getenv("DB_NAME"),
		Port:           getEnv("PORT", "4000"),
		BaseURL:        os.Getenv("BASE_URL"),
		EmailHost:      os.Getenv("EMAIL_HOST"),
		EmailPort:      getEnvAsInt("EMAIL_PORT", 465),
		EmailSecure:    os.Getenv("EMAIL_SECURE") == "true",
		EmailUser:      os.Getenv("EMAIL_USER"),
		EmailPass:      os.Getenv("EMAIL_PASS"),
		EmailTimeout:   getEnvAsDuration("EMAIL_TIMEOUT", 10*time.Second),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		JWTSecret:      getEnv("JWT_SECRET", "secreto"),
		OTPCodeLength:  getEnvAsInt("OTP_CODE_LENGTH", 6),
		OTPTTL:         getEnvAsDuration("OTP_TTL", 5*time.Minute),
		OTPMaxAttempts: getEnvAsInt("OTP_MAX_ATTEMPTS", 5),
	}

	// sweeping at the same cadence as the TTL keeps the worst-case lifetime
	// of an expired entry at 2x TTL
	conf.OTPSweepInterval = getEnvAsDuration("OTP_SWEEP_INTERVAL", conf.OTPTTL)

	return conf
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		zap.S().Warnw("invalid integer in environment, using fallback", "key", key, "value", v)
		return fallback
	}
	return n
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		zap.S().Warnw("invalid duration in environment, using fallback", "key", key, "value", v)
		return fallback
	}
	return d
}

// ErrorStatus logs the underlying error and writes the response for a given
// message and status code. The error itself only reaches the log; the body
// carries the generic message so backend details never leak to the client.
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"error": "%s"}`, message)))
}
