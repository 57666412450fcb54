package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Manual is a virtual-clock Scheduler. Time moves only through Advance and Set;
// due callbacks run synchronously on the goroutine that moves the clock.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	next   Handle
	timers map[Handle]*manualTimer
}

type manualTimer struct {
	handle   Handle
	at       time.Time
	interval time.Duration
	fn       func()
}

// NewManual creates a virtual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:    start,
		timers: make(map[Handle]*manualTimer),
	}
}

// Schedule implements Scheduler.
func (m *Manual) Schedule(delay time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	if delay < 0 {
		delay = 0
	}
	m.next++
	m.timers[m.next] = &manualTimer{handle: m.next, at: m.now.Add(delay), fn: fn}
	return m.next
}

// Every implements Scheduler. It panics with ErrInvalidInterval if interval <= 0.
func (m *Manual) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		panic(ErrInvalidInterval)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	m.timers[m.next] = &manualTimer{handle: m.next, at: m.now.Add(interval), interval: interval, fn: fn}
	return m.next
}

// Cancel implements Scheduler.
func (m *Manual) Cancel(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.timers, h)
}

// Now implements Scheduler.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending reports how many timers are armed.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Advance moves the clock forward by d, firing every callback that falls due in
// deadline order. Ties fire in scheduling order. Callbacks scheduled by other
// callbacks fire too if they fall due within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	m.Set(target)
}

// Set moves the clock to target, firing due callbacks like Advance.
// Moving backwards is ignored.
func (m *Manual) Set(target time.Time) {
	for {
		m.mu.Lock()
		t := m.earliestDue(target)
		if t == nil {
			if target.After(m.now) {
				m.now = target
			}
			m.mu.Unlock()
			return
		}

		m.now = t.at
		if t.interval > 0 {
			t.at = t.at.Add(t.interval)
		} else {
			delete(m.timers, t.handle)
		}
		fn := t.fn
		m.mu.Unlock()

		fn()
	}
}

func (m *Manual) earliestDue(target time.Time) *manualTimer {
	due := make([]*manualTimer, 0, len(m.timers))
	for _, t := range m.timers {
		if !t.at.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].handle < due[j].handle
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}
