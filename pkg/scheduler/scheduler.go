// Package scheduler provides cancellable scheduled callbacks. Every artificial
// delay and periodic tick in the service goes through a Scheduler so that tests
// can drive time with a virtual clock instead of sleeping.
package scheduler

import "time"

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped a pending
	// timer. Stopping an already stopped timer is safe.
	Stop() bool
}

// Scheduler schedules callbacks on a clock.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}
