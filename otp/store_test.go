package otp_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/registroapp/registro-api/models"
	"github.com/registroapp/registro-api/otp"
)

func staged() models.Usuario {
	return models.Usuario{
		Nombre:   "Ana",
		Username: "ana123",
		Email:    "ana@example.com",
		Password: "Abcd1234",
	}
}

func TestStageAndGet(t *testing.T) {
	s := otp.NewMemoryStore()

	tempToken := s.Stage(staged(), "123456", 5*time.Minute)
	assert.NotEmpty(t, tempToken)

	pending, ok := s.Get(tempToken)
	assert.True(t, ok)
	assert.Equal(t, "123456", pending.Code)
	assert.Equal(t, "ana@example.com", pending.Usuario.Email)
	assert.Equal(t, 0, pending.Attempts)
	assert.True(t, pending.ExpiresAt.After(time.Now()))
}

func TestStageNeverReusesHandles(t *testing.T) {
	s := otp.NewMemoryStore()

	first := s.Stage(staged(), "111111", time.Minute)
	second := s.Stage(staged(), "222222", time.Minute)
	assert.NotEqual(t, first, second)

	a, _ := s.Get(first)
	b, _ := s.Get(second)
	assert.Equal(t, "111111", a.Code)
	assert.Equal(t, "222222", b.Code)
}

func TestGetUnknownHandle(t *testing.T) {
	s := otp.NewMemoryStore()

	_, ok := s.Get("nope")
	assert.False(t, ok)
}

func TestRecordFailedAttempt(t *testing.T) {
	s := otp.NewMemoryStore()
	tempToken := s.Stage(staged(), "123456", time.Minute)

	n, ok := s.RecordFailedAttempt(tempToken)
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	n, ok = s.RecordFailedAttempt(tempToken)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = s.RecordFailedAttempt("nope")
	assert.False(t, ok)
}

func TestRecordFailedAttemptSerialized(t *testing.T) {
	s := otp.NewMemoryStore()
	tempToken := s.Stage(staged(), "123456", time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RecordFailedAttempt(tempToken)
		}()
	}
	wg.Wait()

	pending, ok := s.Get(tempToken)
	assert.True(t, ok)
	assert.Equal(t, 50, pending.Attempts)
}

func TestReissueResetsAttemptsAndExpiry(t *testing.T) {
	s := otp.NewMemoryStore()
	tempToken := s.Stage(staged(), "123456", time.Minute)
	s.RecordFailedAttempt(tempToken)
	s.RecordFailedAttempt(tempToken)

	ok := s.Reissue(tempToken, "654321", time.Hour)
	assert.True(t, ok)

	pending, _ := s.Get(tempToken)
	assert.Equal(t, "654321", pending.Code)
	assert.Equal(t, 0, pending.Attempts)
	assert.True(t, pending.ExpiresAt.After(time.Now().Add(30*time.Minute)))

	assert.False(t, s.Reissue("nope", "000000", time.Minute))
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := otp.NewMemoryStore()
	tempToken := s.Stage(staged(), "123456", time.Minute)

	s.Remove(tempToken)
	_, ok := s.Get(tempToken)
	assert.False(t, ok)

	s.Remove(tempToken)
	s.Remove("nope")
}

func TestSweepExpired(t *testing.T) {
	s := otp.NewMemoryStore()
	expired := s.Stage(staged(), "111111", -time.Second)
	live := s.Stage(staged(), "222222", time.Hour)

	count := s.SweepExpired(time.Now())
	assert.Equal(t, 1, count)

	_, ok := s.Get(expired)
	assert.False(t, ok)
	_, ok = s.Get(live)
	assert.True(t, ok)

	assert.Equal(t, 0, s.SweepExpired(time.Now()))
}
