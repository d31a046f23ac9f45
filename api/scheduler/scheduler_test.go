package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/registroapp/registro-api/api/scheduler"
	"github.com/registroapp/registro-api/models"
	"github.com/registroapp/registro-api/otp"
)

func TestSweepEvictsOnlyExpiredEntries(t *testing.T) {
	store := otp.NewMemoryStore()
	expired := store.Stage(models.Usuario{Email: "vieja@example.com"}, "111111", -time.Second)
	live := store.Stage(models.Usuario{Email: "nueva@example.com"}, "222222", time.Hour)

	reaper := scheduler.NewReaper(store, time.Minute)
	reaper.Sweep()

	_, ok := store.Get(expired)
	assert.False(t, ok)
	_, ok = store.Get(live)
	assert.True(t, ok)
}

func TestStartAndStop(t *testing.T) {
	store := otp.NewMemoryStore()
	reaper := scheduler.NewReaper(store, time.Hour)

	reaper.Start()
	reaper.Stop()
}
