package collection

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is the quiet period before a pending check fires.
const DefaultDebounceDelay = 800 * time.Millisecond

// Debouncer coalesces rapid successive inputs into a single deferred call.
// Each Trigger supersedes any pending one, so only the latest value is
// ever delivered: typing "Gha" then "n" before the delay elapses fires
// exactly one call, for "Ghan".
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewDebouncer creates a debouncer with the given quiet period. A
// non-positive delay falls back to DefaultDebounceDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn(value) after the quiet period, cancelling any
// pending invocation. fn runs on its own goroutine.
func (d *Debouncer) Trigger(value string, fn func(string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := d.gen == gen
		d.mu.Unlock()
		// A newer trigger may have landed between the timer firing and
		// this callback running; only the latest generation delivers.
		if current {
			fn(value)
		}
	})
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
