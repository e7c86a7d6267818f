package view

import (
	"sync"
	"time"
)

// searchDebounce is the quiescent period before a search keystroke is
// applied to the active filter.
const searchDebounce = 300 * time.Millisecond

// debouncer delays delivery of a rapidly-changing value until a quiet period
// elapses. Each trigger cancels the pending one; nothing fires after stop.
type debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timer  *time.Timer
	gen    uint64
	closed bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

// trigger schedules fn to run after the delay, cancelling any pending run.
// fn executes on a timer goroutine; callers are responsible for their own
// locking inside fn.
func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A newer trigger or stop invalidates this firing: the timer may
		// have been mid-flight when Stop was called.
		stale := d.closed || gen != d.gen
		d.mu.Unlock()
		if !stale {
			fn()
		}
	})
}

// cancel invalidates any pending run; later triggers still work.
func (d *debouncer) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// stop cancels any pending run and prevents all future ones.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
