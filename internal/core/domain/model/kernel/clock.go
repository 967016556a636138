package kernel

import (
	"fmt"
	"sync/atomic"
)

// Tick is one discrete simulation time step.
type Tick int

// Clock is the monotonic tick source of a simulation run.
// Only the step driver advances it; everything else reads it for timestamps.
// The zero value starts at tick 0 and is ready to use.
type Clock struct {
	now atomic.Int64
}

// NewClock returns a clock at tick 0.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current tick.
func (c *Clock) Now() Tick {
	return Tick(c.now.Load())
}

// Advance moves the clock one tick forward and returns the new tick.
func (c *Clock) Advance() Tick {
	return Tick(c.now.Add(1))
}

// Sequence hands out ids of the form <prefix><n> from an explicit counter,
// starting at 0. It is not safe for concurrent use.
//
// Example:
//
//	robots := kernel.NewSequence("R")
//	robots.Next() // "R0"
//	robots.Next() // "R1"
type Sequence struct {
	prefix string
	next   int
}

// NewSequence creates a Sequence for the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Next returns the next id.
func (s *Sequence) Next() string {
	id := fmt.Sprintf("%s%d", s.prefix, s.next)
	s.next++
	return id
}

// Issued returns how many ids have been handed out.
func (s *Sequence) Issued() int {
	return s.next
}
