package game

// Clock converts variable frame times into a whole number of fixed steps.
type Clock struct {
	step     float64
	maxFrame float64
	acc      float64
}

// NewClock creates a clock for the tuning's tick rate and frame clamp.
func NewClock(t Tuning) *Clock {
	return &Clock{step: t.Dt(), maxFrame: t.MaxFrameSeconds}
}

// Advance adds a frame's elapsed seconds and returns how many fixed steps
// are now due. Frames longer than the clamp are shortened so a stall does
// not trigger a burst of catch-up steps.
func (c *Clock) Advance(frame float64) int {
	if frame < 0 {
		frame = 0
	}
	if frame > c.maxFrame {
		frame = c.maxFrame
	}
	c.acc += frame
	n := 0
	for c.acc+timeEpsilon >= c.step {
		c.acc -= c.step
		n++
	}
	if c.acc < 0 {
		c.acc = 0
	}
	return n
}

// Alpha is the fraction of a step left in the accumulator, for interpolation.
func (c *Clock) Alpha() float64 {
	return c.acc / c.step
}

// Reset drops any accumulated time.
func (c *Clock) Reset() {
	c.acc = 0
}
