// Package timeutil provides the simulation clock abstraction used by the
// contact, scheduling and simulation packages.
//
// Simulation time is a monotonic count of fixed-length ticks expressed in
// seconds. Nothing in the core reads the wall clock.
package timeutil

import (
	"fmt"
	"sync"
)

// DefaultTickLength is the duration of one simulation step in seconds.
const DefaultTickLength = 1.0 / 60.0

// Clock provides the current simulation time.
type Clock interface {
	// Now returns the simulation time in seconds.
	Now() float64

	// TickLength returns the fixed duration of one tick in seconds.
	TickLength() float64
}

// TickClock is a manually advanced clock counting whole ticks.
type TickClock struct {
	mu         sync.Mutex
	tick       uint64
	tickLength float64
}

// NewTickClock creates a TickClock at tick zero. A non-positive tickLength
// falls back to DefaultTickLength.
func NewTickClock(tickLength float64) *TickClock {
	if tickLength <= 0 {
		tickLength = DefaultTickLength
	}
	return &TickClock{tickLength: tickLength}
}

// Now returns the simulation time of the current tick.
func (c *TickClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.tick) * c.tickLength
}

// TickLength returns the tick duration in seconds.
func (c *TickClock) TickLength() float64 {
	return c.tickLength
}

// Tick returns the number of ticks elapsed.
func (c *TickClock) Tick() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tick
}

// Advance moves the clock forward by n ticks.
func (c *TickClock) Advance(n uint64) {
	c.mu.Lock()
	c.tick += n
	c.mu.Unlock()
}

// Set moves the clock to an absolute tick. Moving backwards panics: the
// simulation clock is monotonic.
func (c *TickClock) Set(tick uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tick < c.tick {
		panic(fmt.Sprintf("timeutil: clock moved backwards from tick %d to %d", c.tick, tick))
	}
	c.tick = tick
}

// FixedClock is a clock frozen at T. It is useful for evaluating contact
// regions at a chosen instant.
type FixedClock struct {
	T    float64
	Step float64
}

// Now returns T.
func (c FixedClock) Now() float64 { return c.T }

// TickLength returns Step, or DefaultTickLength when Step is unset.
func (c FixedClock) TickLength() float64 {
	if c.Step <= 0 {
		return DefaultTickLength
	}
	return c.Step
}
