package scheduler

import "time"

// Handle identifies a scheduled callback. The zero Handle is never issued,
// so it can mark "no timer" in the owner's bookkeeping.
type Handle uint64

// Scheduler arms and cancels timers.
//
// Cancelling an unknown, fired or already cancelled handle is a no-op.
type Scheduler interface {
	// Schedule runs fn once after delay. Non-positive delays fire as soon as possible.
	Schedule(delay time.Duration, fn func()) Handle
	// Every runs fn repeatedly, interval apart, until cancelled.
	Every(interval time.Duration, fn func()) Handle
	// Cancel stops a pending timer.
	Cancel(h Handle)
	// Now reports the scheduler's current time.
	Now() time.Time
}
