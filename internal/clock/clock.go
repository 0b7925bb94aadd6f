// Package clock abstracts time so journal records can be tested deterministically.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time in UTC.
type RealClock struct{}

// Now returns the current system time in UTC.
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// StepClock is a fake Clock that starts at a fixed time and moves forward by
// Step on every call, so successive journal timestamps are distinct and ordered.
type StepClock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

// NewStepClock creates a StepClock starting at start.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{current: start, step: step}
}

// Now returns the current fake time and then advances it.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Peek returns the time the next call to Now will return.
func (c *StepClock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
