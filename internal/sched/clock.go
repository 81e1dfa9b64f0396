// internal/sched/clock.go

package sched

// Clock counts simulated time units. It never reads the wall clock; the loop
// advances it by the units each execution consumes.
type Clock struct {
	now int64
}

// Advance moves the clock forward by units.
func (c *Clock) Advance(units int) {
	c.now += int64(units)
}

// Now returns the elapsed simulated time.
func (c *Clock) Now() int64 {
	return c.now
}
