package ggwin

import "time"

// Clock is the time source of the frame clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// frameClock produces render opportunities at the display refresh rate.
// An unarmed clock never fires.
type frameClock struct {
	interval time.Duration
	next     time.Time
	armed    bool
}

func (c *frameClock) arm(now time.Time) {
	c.armed = true
	c.next = now
}

func (c *frameClock) disarm() { c.armed = false }

// due reports whether a tick is due at now and, if so, schedules the
// next one. Missed ticks are skipped rather than replayed.
func (c *frameClock) due(now time.Time) bool {
	if !c.armed || now.Before(c.next) {
		return false
	}
	c.next = c.next.Add(c.interval)
	if !c.next.After(now) {
		c.next = now.Add(c.interval)
	}
	return true
}

// until returns the time left before the next tick.
func (c *frameClock) until(now time.Time) (time.Duration, bool) {
	if !c.armed {
		return 0, false
	}
	return max(c.next.Sub(now), 0), true
}
