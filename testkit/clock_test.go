package testkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFakeClock(t *testing.T) {
	start := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	c := NewFakeClock(start)
	require.Equal(t, start, c.Now())

	c.Sleep(3 * time.Second)
	require.Equal(t, start.Add(3*time.Second), c.Now())

	c.Advance(time.Minute)
	require.Equal(t, start.Add(3*time.Second+time.Minute), c.Now())
}

// a FakeClock-driven wait loop runs instantly
func TestFakeClockDrivesWaits(t *testing.T) {
	c := NewFakeClock(time.Unix(0, 0))
	deadline := c.Now().Add(time.Hour)
	ticks := 0
	for c.Now().Before(deadline) {
		c.Sleep(time.Minute)
		ticks++
	}
	require.Equal(t, 60, ticks)
}

func TestRealClock(t *testing.T) {
	var c Clock = RealClock{}
	before := time.Now()
	got := c.Now()
	require.False(t, got.Before(before))
	require.Less(t, time.Since(got), time.Minute)
}
