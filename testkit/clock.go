package testkit

import (
	"sync"
	"time"
)

// Clock abstracts the passage of time so code under test can run against
// a controllable source instead of the time package
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock is a Clock backed by the time package
type RealClock struct{}

func (RealClock) Now() time.Time        { return time.Now() }
func (RealClock) Sleep(d time.Duration) { time.Sleep(d) }

// FakeClock is a Clock whose time only moves when told to. Sleep returns
// immediately after advancing the clock, so time-dependent code runs
// instantly and deterministically under test
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a FakeClock frozen at start
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the fake current time
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the clock by d and returns immediately
func (c *FakeClock) Sleep(d time.Duration) { c.Advance(d) }

// Advance moves the clock forward by d
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
