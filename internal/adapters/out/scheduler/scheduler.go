// Package scheduler adapts github.com/facebookgo/clock to ports.Scheduler.
// Production wiring uses clock.New(); tests pass a *clock.Mock and move time
// with Add.
package scheduler

import (
	"time"

	"tracking/internal/core/ports"

	"github.com/facebookgo/clock"
)

// ClockScheduler runs callbacks on a clock.Clock.
type ClockScheduler struct {
	clock clock.Clock
}

var _ ports.Scheduler = (*ClockScheduler)(nil)

// New wraps c. A nil clock selects the wall clock.
func New(c clock.Clock) *ClockScheduler {
	if c == nil {
		c = clock.New()
	}
	return &ClockScheduler{clock: c}
}

// AfterFunc calls f on its own goroutine after d (inline from Mock.Add when
// c is a mock).
func (s *ClockScheduler) AfterFunc(d time.Duration, f func()) ports.Timer {
	return s.clock.AfterFunc(d, f)
}

func (s *ClockScheduler) Now() time.Time {
	return s.clock.Now()
}
