package otp

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/registroapp/registro-api/models"
)

// PendingRegistration is the staged state for one registration attempt. The
// candidate usuario is held in plaintext until commit; it must never reach
// durable storage or logs before then.
type PendingRegistration struct {
	Usuario   models.Usuario
	Code      string
	ExpiresAt time.Time
	Attempts  int
}

// Store holds pending registrations keyed by their opaque session handle.
// Implementations must serialize mutations per handle: two concurrent failed
// attempts may not lose an increment. MemoryStore is the single-instance
// implementation; a multi-instance deployment would back this with an
// external keyed store instead.
type Store interface {
	Stage(usuario models.Usuario, code string, ttl time.Duration) string
	Get(tempToken string) (PendingRegistration, bool)
	RecordFailedAttempt(tempToken string) (int, bool)
	Reissue(tempToken string, code string, ttl time.Duration) bool
	Remove(tempToken string)
	SweepExpired(now time.Time) int
}

// MemoryStore is a mutex-guarded in-process Store
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*PendingRegistration
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*PendingRegistration)}
}

// Stage inserts a fresh entry under a newly generated handle and returns the
// handle. Handles are crypto-random UUIDs, never reused, so an existing entry
// can never be overwritten here.
func (s *MemoryStore) Stage(usuario models.Usuario, code string, ttl time.Duration) string {
	tempToken := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tempToken] = &PendingRegistration{
		Usuario:   usuario,
		Code:      code,
		ExpiresAt: time.Now().Add(ttl),
	}
	return tempToken
}

// Get returns a copy of the entry so callers never observe concurrent
// mutations mid-read
func (s *MemoryStore) Get(tempToken string) (PendingRegistration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[tempToken]
	if !ok {
		return PendingRegistration{}, false
	}
	return *e, true
}

// RecordFailedAttempt increments the failed-attempt counter under the store
// lock and returns the new count
func (s *MemoryStore) RecordFailedAttempt(tempToken string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[tempToken]
	if !ok {
		return 0, false
	}
	e.Attempts++
	return e.Attempts, true
}

// Reissue swaps in a new code, clears the attempt counter and pushes out the
// expiry
func (s *MemoryStore) Reissue(tempToken string, code string, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[tempToken]
	if !ok {
		return false
	}
	e.Code = code
	e.Attempts = 0
	e.ExpiresAt = time.Now().Add(ttl)
	return true
}

// Remove deletes the entry. Removing an absent handle is a no-op.
func (s *MemoryStore) Remove(tempToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, tempToken)
}

// SweepExpired drops every entry past its expiry and reports how many went
func (s *MemoryStore) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for tempToken, e := range s.entries {
		if e.ExpiresAt.Before(now) {
			delete(s.entries, tempToken)
			count++
		}
	}
	return count
}
