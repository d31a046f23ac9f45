package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/registroapp/registro-api/otp"
)

// Reaper periodically evicts expired pending registrations from the store.
// It only removes entries, never mutates live ones, so it runs alongside
// request handling under the store's own locking.
type Reaper struct {
	cron     *cron.Cron
	store    otp.Store
	interval time.Duration
}

// NewReaper creates a reaper sweeping the given store at the given interval
func NewReaper(store otp.Store, interval time.Duration) *Reaper {
	return &Reaper{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		store:    store,
		interval: interval,
	}
}

// Start registers the sweep job and begins the schedule
func (r *Reaper) Start() {
	_, err := r.cron.AddFunc(fmt.Sprintf("@every %s", r.interval), r.Sweep)
	if err != nil {
		zap.S().Errorw("failed to register sweep job", "error", err)
		return
	}
	r.cron.Start()
	zap.S().Infow("pending registration reaper started", "interval", r.interval.String())
}

// Stop gracefully stops the reaper, waiting for a running sweep to finish
func (r *Reaper) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	zap.S().Info("pending registration reaper stopped")
}

// Sweep drops every entry whose expiry has passed
func (r *Reaper) Sweep() {
	if n := r.store.SweepExpired(time.Now()); n > 0 {
		zap.S().Infow("swept expired pending registrations", "count", n)
	}
}
