// Package clock turns wall-clock frame times into capped simulation steps for
// both frontends.
package clock

import "time"

// Frame measures the step between successive frames
type Frame struct {
	Max float64 // Longest step handed to a simulator, in seconds

	last    time.Time
	started bool
}

// Tick returns the seconds since the previous tick, capped at Max. The first
// tick after construction or Reset returns 0, as does a clock going backwards.
func (c *Frame) Tick(now time.Time) float64 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	if c.Max > 0 && dt > c.Max {
		return c.Max
	}
	return dt
}

// Reset makes the next Tick return 0
func (c *Frame) Reset() {
	c.started = false
}
