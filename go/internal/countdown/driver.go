package countdown

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Driver is the round countdown: a single 1-second ticker that counts a
// seeded duration down to zero, fires the expiry callback exactly once
// per cycle, and immediately restarts so the visible timer never stalls
// while the round controller's async completion is still pending.
//
// The driver is display-plus-trigger machinery only; round state lives
// in the controller.
type Driver struct {
	clock    clockwork.Clock
	duration int
	onExpire func()
	onTick   func(remaining int)

	mu        sync.Mutex
	remaining int
	active    bool
}

// New creates a driver seeded with durationSec. onExpire is invoked on
// its own goroutine so a slow completion cycle cannot stall the ticker.
func New(clock clockwork.Clock, durationSec int, onExpire func()) *Driver {
	return &Driver{
		clock:     clock,
		duration:  durationSec,
		onExpire:  onExpire,
		remaining: durationSec,
		active:    true,
	}
}

// OnTick registers an optional per-second observer, called with the
// remaining seconds after each decrement.
func (d *Driver) OnTick(fn func(remaining int)) {
	d.mu.Lock()
	d.onTick = fn
	d.mu.Unlock()
}

// Run consumes ticks until ctx is cancelled. Ticks are anchored to the
// clock's ticker, so repeated cycles do not accumulate drift.
func (d *Driver) Run(ctx context.Context) {
	ticker := d.clock.NewTicker(time.Second)
	defer ticker.Stop()

	log.Info().Int("duration_sec", d.duration).Msg("countdown driver started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("countdown driver stopped")
			return
		case <-ticker.Chan():
			d.tick()
		}
	}
}

// tick applies one second of elapsed time. On reaching zero it fires the
// expiry edge and reseeds the counter to the full duration.
func (d *Driver) tick() {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return
	}

	d.remaining--
	expired := d.remaining <= 0
	if expired {
		d.remaining = d.duration
	}
	remaining := d.remaining
	onTick := d.onTick
	d.mu.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
	if expired {
		log.Debug().Msg("countdown expired")
		go d.onExpire()
	}
}

// Reset reseeds the counter to the full duration without firing.
func (d *Driver) Reset() {
	d.mu.Lock()
	d.remaining = d.duration
	d.mu.Unlock()
}

// SetActive pauses or resumes the countdown. While inactive, ticks are
// ignored and no expiry fires.
func (d *Driver) SetActive(active bool) {
	d.mu.Lock()
	d.active = active
	d.mu.Unlock()
}

// Remaining returns the seconds left in the current cycle.
func (d *Driver) Remaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.remaining
}

// Progress returns elapsed/duration in [0,1]. Display only, never
// authoritative.
func (d *Driver) Progress() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.duration == 0 {
		return 0
	}
	return float64(d.duration-d.remaining) / float64(d.duration)
}
