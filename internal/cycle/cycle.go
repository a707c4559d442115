package cycle

import "time"

// Cycle tracks the elapsed time within one breath and the active interval.
// The zero value is not usable; build one with New or FromRate.
type Cycle struct {
	timing    Timing
	intervals []Interval
	shortest  time.Duration
	index     int
	elapsed   time.Duration
	started   bool
}

// New builds a cycle from explicit phase durations. Inspiration and
// expiration must be positive, pauses must not be negative.
func New(t Timing) (Cycle, error) {
	if err := t.validate(); err != nil {
		return Cycle{}, err
	}
	c := Cycle{timing: t, intervals: t.intervals()}
	c.shortest = c.intervals[0].Duration()
	for _, iv := range c.intervals[1:] {
		if d := iv.Duration(); d < c.shortest {
			c.shortest = d
		}
	}
	return c, nil
}

// Step advances the clock by dt and reports the edge entered, if any.
//
// The first call after construction or Reset reports the starting interval
// without advancing. Past the last interval the cycle wraps to inspiration
// with elapsed reset to zero. A dt spanning several intervals walks through
// all of them and reports the mark of the last one entered; callers that
// need every edge keep dt at or below Shortest.
func (c *Cycle) Step(dt time.Duration) Mark {
	if !c.started {
		c.started = true
		return markOf(c.intervals[c.index].Phase)
	}
	if dt > 0 {
		c.elapsed += dt
	}

	moved := false
	for !c.intervals[c.index].contains(c.elapsed) {
		moved = true
		c.index++
		if c.index == len(c.intervals) {
			c.index = 0
			c.elapsed = 0
			break
		}
	}
	if !moved {
		return None
	}
	return markOf(c.intervals[c.index].Phase)
}

// State returns the phase of the active interval.
func (c *Cycle) State() Phase {
	return c.intervals[c.index].Phase
}

// Elapsed returns the time since the start of the current breath.
func (c *Cycle) Elapsed() time.Duration {
	return c.elapsed
}

func (c *Cycle) Period() time.Duration {
	return c.timing.Period()
}

// Shortest returns the duration of the briefest interval.
func (c *Cycle) Shortest() time.Duration {
	return c.shortest
}

func (c *Cycle) Timing() Timing {
	return c.timing
}

func (c *Cycle) Intervals() []Interval {
	out := make([]Interval, len(c.intervals))
	copy(out, c.intervals)
	return out
}

// Reset rewinds to the start of inspiration. The next Step reports
// StartOfInspiration again.
func (c *Cycle) Reset() {
	c.index = 0
	c.elapsed = 0
	c.started = false
}
