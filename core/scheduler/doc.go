// Package scheduler provides cancellable one-shot and periodic timers behind a
// small interface, so code that owns timers can run against the wall clock in
// production and a virtual clock in tests.
//
//	s := scheduler.NewTimers()
//	defer s.Stop()
//
//	h := s.Schedule(25*time.Minute, showWarning)
//	tick := s.Every(time.Second, updateCountdown)
//	s.Cancel(h)
//	s.Cancel(tick)
//
// Manual is a deterministic Scheduler driven by Advance:
//
//	m := scheduler.NewManual(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
//	m.Schedule(time.Minute, fn)
//	m.Advance(time.Minute) // fn runs here, on the calling goroutine
package scheduler
