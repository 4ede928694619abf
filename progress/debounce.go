package progress

import (
	"sync"
	"time"
)

// DefaultDebounce is how long rapid saves are coalesced before one write.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces bursts of calls into a single trailing-edge call.
// Trigger replaces any pending call, so only the last function in a burst
// runs. Flush runs the pending call immediately, which matters when the
// player switches lectures and the old lecture's position must land before
// the new one loads.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
}

// NewDebouncer returns a Debouncer with the given delay. A non-positive
// delay selects DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the delay, replacing any pending call
// and restarting the countdown.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Flush runs the pending call now, if there is one.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Cancel drops the pending call without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
	}
}
