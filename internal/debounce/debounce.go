// Package debounce coalesces bursts of calls into a single trailing call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recently triggered function once no trigger has
// arrived for the wait interval. With a positive max wait the call is forced
// no later than maxWait after the first trigger of a burst.
//
// At most one call is pending at any time. Debouncer is safe for concurrent
// use.
type Debouncer struct {
	wait    time.Duration
	maxWait time.Duration

	mu      sync.Mutex
	fn      func()
	timer   *time.Timer
	first   time.Time // start of the current burst
	seq     uint64    // invalidates timers that were replaced
	stopped bool
}

// New returns a Debouncer. A wait of zero or less makes Trigger call
// synchronously.
func New(wait, maxWait time.Duration) *Debouncer {
	return &Debouncer{wait: wait, maxWait: maxWait}
}

// Trigger schedules fn, replacing any pending function and restarting the
// wait interval. It does nothing after Stop.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.wait <= 0 {
		d.cancelLocked()
		d.mu.Unlock()
		fn()
		return
	}

	now := time.Now()
	if d.fn == nil {
		d.first = now
	}
	d.fn = fn

	delay := d.wait
	if d.maxWait > 0 {
		if left := d.first.Add(d.maxWait).Sub(now); left < delay {
			delay = max(left, 0)
		}
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(delay, func() { d.fire(seq) })
	d.mu.Unlock()
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fn != nil
}

// Cancel drops the pending call, if any, without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	d.cancelLocked()
	d.mu.Unlock()
}

// Stop cancels the pending call and disables further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.cancelLocked()
	d.stopped = true
	d.mu.Unlock()
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || d.fn == nil {
		d.mu.Unlock()
		return
	}
	fn := d.fn
	d.fn = nil
	d.timer = nil
	d.mu.Unlock()

	fn()
}

// Caller must hold d.mu.
func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
	d.seq++
}
