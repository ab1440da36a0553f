package ports

import "time"

// Timer is a pending one-shot callback.
type Timer interface {
	Stop()
}

// Scheduler runs callbacks after a delay and tells the time. Production code
// uses the wall clock, tests a mock clock advanced by hand.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}
