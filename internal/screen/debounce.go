package screen

import (
	"sync"
	"time"
)

// Debouncer delays a function until input has been quiet for the configured
// window (trailing edge). Used for the product search box so every keystroke
// does not become a request.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	return &Debouncer{delay: delay}
}

// Do schedules fn, replacing any previously scheduled call.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
