package scheduler

import (
	"sync"
	"time"
)

// Timers is a wall-clock Scheduler backed by time.AfterFunc.
// Callbacks run on their own goroutines. Safe for concurrent use.
type Timers struct {
	mu      sync.Mutex
	next    Handle
	pending map[Handle]*time.Timer
	stopped bool
}

// NewTimers creates a wall-clock scheduler.
func NewTimers() *Timers {
	return &Timers{pending: make(map[Handle]*time.Timer)}
}

// Schedule implements Scheduler.
func (t *Timers) Schedule(delay time.Duration, fn func()) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := t.nextHandle()
	if t.stopped {
		return h
	}

	t.pending[h] = time.AfterFunc(delay, func() {
		if !t.take(h, false) {
			return
		}
		fn()
	})
	return h
}

// Every implements Scheduler. It panics with ErrInvalidInterval if interval <= 0.
func (t *Timers) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		panic(ErrInvalidInterval)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	h := t.nextHandle()
	if t.stopped {
		return h
	}

	var tick func()
	tick = func() {
		if !t.take(h, true) {
			return
		}
		fn()

		t.mu.Lock()
		defer t.mu.Unlock()
		if timer, ok := t.pending[h]; ok {
			timer.Reset(interval)
		}
	}
	t.pending[h] = time.AfterFunc(interval, tick)
	return h
}

// Cancel implements Scheduler.
func (t *Timers) Cancel(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.pending[h]; ok {
		timer.Stop()
		delete(t.pending, h)
	}
}

// Now implements Scheduler.
func (t *Timers) Now() time.Time {
	return time.Now()
}

// Pending reports how many timers are armed.
func (t *Timers) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// Stop cancels every pending timer. Later Schedule and Every calls return
// handles that never fire.
func (t *Timers) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for h, timer := range t.pending {
		timer.Stop()
		delete(t.pending, h)
	}
	t.stopped = true
}

// take reports whether h is still armed. One-shot handles are released.
func (t *Timers) take(h Handle, periodic bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.pending[h]; !ok {
		return false
	}
	if !periodic {
		delete(t.pending, h)
	}
	return true
}

func (t *Timers) nextHandle() Handle {
	t.next++
	return t.next
}
