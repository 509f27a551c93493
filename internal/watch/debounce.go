package watch

import (
	"sync"
	"time"
)

var afterFunc = time.AfterFunc

// debouncer runs fn once delay has passed without another Trigger.
type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	gen   uint64
	fn    func()
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, fn: fn}
}

func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = afterFunc(d.delay, func() { d.fire(gen) })
}

// fire drops callbacks of timers that were replaced or stopped after they
// had already been scheduled.
func (d *debouncer) fire(gen uint64) {
	d.mu.Lock()
	current := d.gen == gen && d.timer != nil
	if current {
		d.timer = nil
	}
	d.mu.Unlock()
	if current {
		d.fn()
	}
}

func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
