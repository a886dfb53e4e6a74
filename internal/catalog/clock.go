package catalog

import "time"

// Timer is a pending call scheduled by Clock.
type Timer interface {
	// Stop prevents the call from running. It returns false if the call already ran or was stopped.
	Stop() bool
}

// Clock schedules delayed calls.
type Clock interface {
	// AfterFunc calls f in its own goroutine after d elapses.
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

// AfterFunc calls f after d using runtime timer.
func (c systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
