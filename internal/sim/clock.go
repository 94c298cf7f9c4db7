package sim

import "time"

// Clock measures frame times with the monotonic clock and keeps a frames
// per second estimate refreshed once a second.
type Clock struct {
	now      func() time.Time
	last     time.Time
	fpsStart time.Time
	frames   int
	fps      float64
}

func NewClock() *Clock {
	return newClock(time.Now)
}

func newClock(now func() time.Time) *Clock {
	t := now()
	return &Clock{now: now, last: t, fpsStart: t}
}

// Tick returns the seconds elapsed since the previous Tick, or since the
// clock was created.
func (c *Clock) Tick() float64 {
	t := c.now()
	dt := t.Sub(c.last).Seconds()
	c.last = t

	c.frames++
	if window := t.Sub(c.fpsStart); window >= time.Second {
		c.fps = float64(c.frames) / window.Seconds()
		c.frames = 0
		c.fpsStart = t
	}
	return dt
}

func (c *Clock) FPS() float64 { return c.fps }
