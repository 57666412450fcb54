package scheduler_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pahanaedu/bookstore/core/scheduler"
)

func TestTimers_Schedule(t *testing.T) {
	t.Parallel()

	s := scheduler.NewTimers()
	defer s.Stop()

	done := make(chan struct{})
	s.Schedule(10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}

	assert.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, 5*time.Millisecond)
}

func TestTimers_Cancel(t *testing.T) {
	t.Parallel()

	s := scheduler.NewTimers()
	defer s.Stop()

	var fired atomic.Bool
	h := s.Schedule(20*time.Millisecond, func() { fired.Store(true) })
	s.Cancel(h)

	time.Sleep(60 * time.Millisecond)
	assert.False(t, fired.Load())
	assert.Equal(t, 0, s.Pending())
}

func TestTimers_Every(t *testing.T) {
	t.Parallel()

	s := scheduler.NewTimers()
	defer s.Stop()

	var ticks atomic.Int32
	h := s.Every(5*time.Millisecond, func() { ticks.Add(1) })

	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, 5*time.Millisecond)

	s.Cancel(h)
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.LessOrEqual(t, ticks.Load(), after+1, "at most one in-flight tick after cancel")
}

func TestTimers_Stop(t *testing.T) {
	t.Parallel()

	s := scheduler.NewTimers()

	var fired atomic.Bool
	s.Schedule(20*time.Millisecond, func() { fired.Store(true) })
	s.Stop()
	s.Schedule(time.Millisecond, func() { fired.Store(true) })

	time.Sleep(60 * time.Millisecond)
	assert.False(t, fired.Load())
}
